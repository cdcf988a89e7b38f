package detect

import (
	"io"

	"github.com/grailbio/base/tsv"
)

// WriteHits writes the hit table in the fixed column order for the
// given backend. An empty hit set produces no output at all: zero
// detected genes is an empty file, while a failed run produces no file
// (the caller aborts on error before writing).
func WriteHits(w io.Writer, hits []Hit, backend Backend, extra *ExtraColumn) error {
	if len(hits) == 0 {
		return nil
	}
	out := tsv.NewWriter(w)
	for _, name := range ColumnNames(backend, extra) {
		out.WriteString(name)
	}
	if err := out.EndLine(); err != nil {
		return err
	}
	for i := range hits {
		for _, cell := range hits[i].TabRow() {
			out.WriteString(cell)
		}
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}
