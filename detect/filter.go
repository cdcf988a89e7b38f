package detect

import "github.com/grailbio/base/log"

// Filter applies the backend's configured thresholds to raw hits. A
// hit survives iff every bound its threshold set declares holds;
// bounds a backend does not declare are ignored rather than defaulted.
// The filter is pure: the input slice is not modified and no I/O
// happens beyond the progress log.
func Filter(hits []RawHit, th Thresholds) []RawHit {
	out := make([]RawHit, 0, len(hits))
	for i := range hits {
		if th.keep(&hits[i]) {
			out = append(out, hits[i])
		}
	}
	log.Printf("%d/%d %s hits passed threshold filtering", len(out), len(hits), th.Backend())
	return out
}
