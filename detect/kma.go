package detect

import (
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
)

// ParseKMARes normalizes a KMA ".res" result table. KMA pads numeric
// cells with spaces, so every cell is read as a string and trimmed
// before conversion. The template key carries the standardized id in
// its third "__" field, like the BLAST subject id.
func ParseKMARes(in io.Reader) ([]RawHit, error) {
	r := tsv.NewReader(in)
	r.HasHeaderRow = true
	r.UseHeaderNames = true
	row := struct {
		Template string `tsv:"#Template"`
		Score    string `tsv:"Score"`
		Length   string `tsv:"Template_length"`
		Identity string `tsv:"Template_Identity"`
		Coverage string `tsv:"Template_Coverage"`
		Depth    string `tsv:"Depth"`
	}{}

	var hits []RawHit
	nLine := 1 // header
	for {
		if err := r.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, &ParseError{Line: nLine + 1, Msg: "kma res row", Err: err}
		}
		nLine++
		_, seqID, err := splitSeqKey(strings.TrimSpace(row.Template))
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad template", Err: err}
		}
		score, err := strconv.Atoi(strings.TrimSpace(row.Score))
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad score", Err: err}
		}
		length, err := strconv.Atoi(strings.TrimSpace(row.Length))
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad template length", Err: err}
		}
		identity, err := strconv.ParseFloat(strings.TrimSpace(row.Identity), 64)
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad identity", Err: err}
		}
		coverage, err := strconv.ParseFloat(strings.TrimSpace(row.Coverage), 64)
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad coverage", Err: err}
		}
		depth, err := strconv.ParseFloat(strings.TrimSpace(row.Depth), 64)
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad depth", Err: err}
		}
		hits = append(hits, RawHit{
			SeqID:           seqID,
			Backend:         KMA,
			PercentIdentity: identity,
			Coverage:        coverage,
			SubjectLength:   length,
			Depth:           depth,
			Score:           score,
		})
	}
	log.Printf("parsed %d kma hits", len(hits))
	return hits, nil
}
