package detect

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"
)

// ParseSRST2FullGenes normalizes an SRST2 "fullgenes" report. The
// table is header-addressed; columns beyond the ones read here are
// ignored. Identity is derived from the reported divergence, and the
// unaligned overlap from the uncovered fraction of the allele, so
// every SRST2 bound can be applied uniformly by Filter.
func ParseSRST2FullGenes(in io.Reader) ([]RawHit, error) {
	r := tsv.NewReader(in)
	r.HasHeaderRow = true
	r.UseHeaderNames = true
	row := struct {
		Gene        string `tsv:"gene"`
		Allele      string `tsv:"allele"`
		Coverage    string `tsv:"coverage"`
		Depth       string `tsv:"depth"`
		Diffs       string `tsv:"diffs"`
		Uncertainty string `tsv:"uncertainty"`
		Divergence  string `tsv:"divergence"`
		Length      string `tsv:"length"`
		SeqID       string `tsv:"seqid"`
	}{}

	var hits []RawHit
	nLine := 1 // header
	for {
		if err := r.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, &ParseError{Line: nLine + 1, Msg: "srst2 fullgenes row", Err: err}
		}
		nLine++
		coverage, err := strconv.ParseFloat(row.Coverage, 64)
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad coverage", Err: err}
		}
		depth, err := strconv.ParseFloat(row.Depth, 64)
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad depth", Err: err}
		}
		divergence, err := strconv.ParseFloat(row.Divergence, 64)
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad divergence", Err: err}
		}
		length, err := strconv.Atoi(row.Length)
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad length", Err: err}
		}
		diffs := normalizeSRST2Field(row.Diffs)
		mismatches, err := countDiffs(diffs)
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad diffs", Err: err}
		}
		hits = append(hits, RawHit{
			SeqID:            row.SeqID,
			Backend:          SRST2,
			PercentIdentity:  100 - divergence,
			Coverage:         coverage,
			Divergence:       divergence,
			Mismatches:       mismatches,
			MismatchDetail:   diffs,
			Uncertainty:      normalizeSRST2Field(row.Uncertainty),
			UnalignedOverlap: int(math.Round(float64(length) * (100 - coverage) / 100)),
			Depth:            depth,
			SubjectLength:    length,
		})
	}
	log.Printf("parsed %d srst2 hits", len(hits))
	return hits, nil
}

// normalizeSRST2Field maps SRST2's "no value" spellings to the empty
// string.
func normalizeSRST2Field(s string) string {
	s = strings.TrimSpace(s)
	if s == "-" || s == "none" {
		return ""
	}
	return s
}

// countDiffs sums the leading counts of ";"-separated difference
// tokens such as "6snp" or "2indel". An empty value means no
// differences.
func countDiffs(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	total := 0
	for _, tok := range strings.Split(s, ";") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		i := 0
		for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
			i++
		}
		if i == 0 {
			return 0, errors.Errorf("difference token %q has no count", tok)
		}
		n, err := strconv.Atoi(tok[:i])
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
