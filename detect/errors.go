package detect

import "fmt"

// ParseError reports a malformed record in a backend's raw output. It
// aborts the consolidation run for the offending (sample, database,
// backend) instance; malformed rows are never skipped silently.
type ParseError struct {
	Line int
	Msg  string
	Err  error // underlying cause, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConsistencyError reports a desynchronization between the hit stream
// and the database artifacts: a sequence id missing from the cluster
// partition or the index, or an alignment-block count that does not
// match the hit count. It always indicates an upstream bug and is
// never patched over.
type ConsistencyError struct {
	Msg string
}

func (e *ConsistencyError) Error() string { return e.Msg }

func consistencyErrorf(format string, args ...interface{}) error {
	return &ConsistencyError{Msg: fmt.Sprintf(format, args...)}
}
