package detect

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// BlastOutputFormat is the tabular report layout the BLAST adapter
// consumes. The upstream search must run with -outfmt set to this
// value.
const BlastOutputFormat = "7 pident sseqid sseq slen qseqid qstart qend"

const blastColumns = 7

// splitSeqKey parses a database sequence key of the form
// "<n>__<cluster>__<seqid>__<seqid>", as written by the database
// build. The third field is the standardized id.
func splitSeqKey(key string) (cluster, seqID string, err error) {
	parts := strings.Split(key, "__")
	if len(parts) < 4 {
		return "", "", errors.Errorf("malformed sequence key %q", key)
	}
	return parts[1], parts[2], nil
}

// ParseBlastTabular normalizes a tabular (outfmt 7) BLAST report into
// raw hits. Comment lines are skipped. One row is emitted per HSP;
// multiple hits on the same sequence are resolved later by cluster
// selection.
func ParseBlastTabular(in io.Reader) ([]RawHit, error) {
	var hits []RawHit
	sc := bufio.NewScanner(in)
	sc.Buffer(nil, 16*1024*1024)
	nLine := 0
	for sc.Scan() {
		nLine++
		line := sc.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) != blastColumns {
			return nil, &ParseError{
				Line: nLine,
				Msg:  fmt.Sprintf("expected %d columns, found %d", blastColumns, len(cols)),
			}
		}
		pident, err := strconv.ParseFloat(cols[0], 64)
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad pident", Err: err}
		}
		_, seqID, err := splitSeqKey(cols[1])
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad sseqid", Err: err}
		}
		sseq := cols[2]
		slen, err := strconv.Atoi(cols[3])
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad slen", Err: err}
		}
		if slen <= 0 {
			return nil, &ParseError{Line: nLine, Msg: fmt.Sprintf("non-positive slen %d", slen)}
		}
		qstart, err := strconv.Atoi(cols[5])
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad qstart", Err: err}
		}
		qend, err := strconv.Atoi(cols[6])
		if err != nil {
			return nil, &ParseError{Line: nLine, Msg: "bad qend", Err: err}
		}
		alignLen := len(sseq)
		hits = append(hits, RawHit{
			SeqID:           seqID,
			Backend:         BLAST,
			PercentIdentity: pident,
			Coverage:        100 * float64(alignLen) / float64(slen),
			Contig:          cols[4],
			QueryStart:      qstart,
			QueryEnd:        qend,
			AlignLength:     alignLen,
			Gaps:            strings.Count(sseq, "-"),
			SubjectLength:   slen,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read blast output")
	}
	log.Printf("parsed %d blast hits", len(hits))
	return hits, nil
}
