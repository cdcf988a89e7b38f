package detect

import (
	"io/ioutil"
	"path/filepath"
)

// AlignmentBlock is one human-readable pairwise alignment, generated
// in lockstep with hit selection by the upstream formatter step.
type AlignmentBlock struct {
	// Name identifies the block, typically the source file name.
	Name string
	// Text is the alignment body. Hits hold a reference to the block
	// rather than a copy; the payload is large and read on demand
	// downstream.
	Text []byte
}

// AttachAlignments pairs each hit with its alignment block by
// position: the i-th block belongs to the i-th hit, by construction of
// the upstream step that generates both in lockstep. A length mismatch
// means hit selection and alignment generation desynchronized and is a
// consistency error.
func AttachAlignments(hits []Hit, blocks []AlignmentBlock) error {
	if len(hits) != len(blocks) {
		return consistencyErrorf("%d hits but %d alignment blocks", len(hits), len(blocks))
	}
	for i := range hits {
		hits[i].Alignment = &blocks[i]
	}
	return nil
}

// ReadAlignmentDir loads alignment blocks from the directory written
// by the upstream formatter: one text file per selected hit, with
// zero-padded ordinal names so lexical order is selection order.
func ReadAlignmentDir(dir string) ([]AlignmentBlock, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var blocks []AlignmentBlock
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		text, err := ioutil.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, AlignmentBlock{Name: e.Name(), Text: text})
	}
	return blocks, nil
}
