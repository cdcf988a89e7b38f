package detect

import "fmt"

// RawHit is one normalized alignment or mapping result from a single
// backend run. It is immutable once built by an adapter and is
// consumed within one consolidation run. Fields beyond SeqID,
// PercentIdentity and Coverage are filled only by the adapter for the
// backend that reports them.
type RawHit struct {
	// SeqID is the standardized database sequence key, e.g. "seq_42".
	SeqID   string
	Backend Backend

	PercentIdentity float64 // 0-100
	Coverage        float64 // 0-100, fraction of the reference covered

	// Contig alignment (BLAST).
	Contig      string // query contig the hit was found on
	QueryStart  int
	QueryEnd    int
	AlignLength int
	Gaps        int

	// SubjectLength is the reference allele length. All backends
	// report it.
	SubjectLength int

	// Read mapping (SRST2).
	Divergence float64
	Mismatches int
	// MismatchDetail is the raw difference summary, e.g. "6snp1indel".
	// Empty when the mapping has no differences.
	MismatchDetail   string
	Uncertainty      string
	UnalignedOverlap int

	// Read mapping (SRST2, KMA).
	Depth float64
	Score int
}

// FullLength reports whether the hit spans the entire reference
// sequence.
func (h *RawHit) FullLength() bool {
	if h.Backend == BLAST {
		return h.AlignLength == h.SubjectLength
	}
	return h.Coverage == 100.0
}

// PerfectHit reports whether the hit matches the reference exactly
// over its full length.
func (h *RawHit) PerfectHit() bool {
	if h.Backend == SRST2 {
		return h.FullLength() && h.MismatchDetail == ""
	}
	return h.FullLength() && h.PercentIdentity == 100.0
}

// lengthStat renders covered vs total reference bases, e.g. "512/570".
func (h *RawHit) lengthStat() string {
	return fmt.Sprintf("%d/%d", h.AlignLength, h.SubjectLength)
}
