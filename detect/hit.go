package detect

import (
	"fmt"
	"sort"
)

// Hit is one reportable gene-detection result after filtering, cluster
// resolution and name remapping. Once built, the only permitted
// mutation is the optional alignment attachment.
type Hit struct {
	// Cluster is the similarity cluster the detected allele belongs
	// to.
	Cluster string
	// Locus is the original allele name from the database.
	Locus string
	// Accession is the sequence accession, "-" when none is recorded.
	Accession string

	PercentIdentity float64
	Coverage        float64

	// Raw is the backend record the hit was selected from; it supplies
	// the backend-specific report fields.
	Raw RawHit
	// Extra is an optional database-specific metadata column.
	Extra *MetadataField
	// Alignment references the human-readable alignment for the hit,
	// when the backend produces one. The text is referenced, not
	// copied.
	Alignment *AlignmentBlock
}

// MetadataField is a single named report field attached from database
// metadata.
type MetadataField struct {
	Name  string
	Value string
}

// ColumnNames returns the report header for hits of the given backend,
// in the fixed column order of Hit.TabRow. The extra metadata column,
// when configured, precedes the accession.
func ColumnNames(b Backend, extra *ExtraColumn) []string {
	var cols []string
	switch b {
	case BLAST:
		cols = []string{"DB_cluster", "Locus", "% Identity", "HSP/Locus length", "Contig", "Position in contig"}
	case SRST2:
		cols = []string{"DB_cluster", "Locus", "Length", "% Covered", "Mismatches", "Uncertainty", "Divergence (%)", "Depth"}
	case KMA:
		cols = []string{"DB_cluster", "Locus", "Length", "% Identity", "% Covered", "Depth"}
	}
	if extra != nil {
		cols = append(cols, extra.Name)
	}
	return append(cols, "Accession")
}

// TabRow renders the hit as one row in the column order of
// ColumnNames.
func (h *Hit) TabRow() []string {
	var row []string
	switch h.Raw.Backend {
	case BLAST:
		row = []string{
			h.Cluster,
			h.Locus,
			fmt.Sprintf("%.2f", h.PercentIdentity),
			h.Raw.lengthStat(),
			h.Raw.Contig,
			fmt.Sprintf("%d..%d", h.Raw.QueryStart, h.Raw.QueryEnd),
		}
	case SRST2:
		row = []string{
			h.Cluster,
			h.Locus,
			fmt.Sprintf("%d", h.Raw.SubjectLength),
			fmt.Sprintf("%.2f", h.Coverage),
			orDash(h.Raw.MismatchDetail),
			orDash(h.Raw.Uncertainty),
			fmt.Sprintf("%.2f", h.Raw.Divergence),
			fmt.Sprintf("%.2f", h.Raw.Depth),
		}
	case KMA:
		row = []string{
			h.Cluster,
			h.Locus,
			fmt.Sprintf("%d", h.Raw.SubjectLength),
			fmt.Sprintf("%.2f", h.PercentIdentity),
			fmt.Sprintf("%.2f", h.Coverage),
			fmt.Sprintf("%.2f", h.Raw.Depth),
		}
	}
	if h.Extra != nil {
		row = append(row, h.Extra.Value)
	}
	return append(row, h.Accession)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// SortHits orders hits for deterministic serialization: by locus name,
// then by contig position for the alignment backend. The engine itself
// guarantees only input-stable order, so callers sort before writing.
func SortHits(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Locus != hits[j].Locus {
			return hits[i].Locus < hits[j].Locus
		}
		return hits[i].Raw.QueryStart < hits[j].Raw.QueryStart
	})
}
