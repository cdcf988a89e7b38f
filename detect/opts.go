package detect

// Backend identifies the external detection tool that produced a raw
// hit table.
type Backend int

const (
	// BLAST aligns assembled contigs against the reference database.
	BLAST Backend = iota
	// SRST2 maps short reads against the reference database and scores
	// per-allele coverage and divergence.
	SRST2
	// KMA maps raw reads directly against the redundant reference
	// database using seed-and-extend.
	KMA
)

func (b Backend) String() string {
	switch b {
	case BLAST:
		return "blast"
	case SRST2:
		return "srst2"
	case KMA:
		return "kma"
	}
	return "unknown"
}

// Thresholds is implemented by one threshold set per backend. Each set
// declares only the fields meaningful to its backend; a bound that a
// backend does not declare is never checked against its hits. Minima
// (identity, coverage) are inclusive lower bounds; maxima (divergence,
// mismatches, unaligned overlap) are inclusive upper bounds.
type Thresholds interface {
	Backend() Backend
	// keep reports whether the hit satisfies every declared bound.
	keep(h *RawHit) bool
}

// BlastThresholds bounds hits from contig alignment.
type BlastThresholds struct {
	MinIdentity float64 // minimum percent identity, inclusive
	MinCoverage float64 // minimum percent of the reference covered, inclusive
}

// Backend implements Thresholds.
func (BlastThresholds) Backend() Backend { return BLAST }

func (t BlastThresholds) keep(h *RawHit) bool {
	return h.PercentIdentity >= t.MinIdentity && h.Coverage >= t.MinCoverage
}

// SRST2Thresholds bounds hits from SRST2 read mapping.
type SRST2Thresholds struct {
	MinIdentity float64 // minimum percent identity, inclusive
	MinCoverage float64 // minimum percent of the reference covered, inclusive
	// MaxDivergence is the maximum percent divergence from the
	// reference allele, inclusive.
	MaxDivergence float64
	// MaxMismatches is the maximum number of SNP/indel differences,
	// inclusive.
	MaxMismatches int
	// MaxUnalignedOverlap is the maximum number of reference bases left
	// uncovered by mapped reads, inclusive.
	MaxUnalignedOverlap int
}

// Backend implements Thresholds.
func (SRST2Thresholds) Backend() Backend { return SRST2 }

func (t SRST2Thresholds) keep(h *RawHit) bool {
	return h.PercentIdentity >= t.MinIdentity &&
		h.Coverage >= t.MinCoverage &&
		h.Divergence <= t.MaxDivergence &&
		h.Mismatches <= t.MaxMismatches &&
		h.UnalignedOverlap <= t.MaxUnalignedOverlap
}

// KMAThresholds bounds hits from KMA read mapping.
type KMAThresholds struct {
	MinIdentity float64 // minimum percent identity, inclusive
	MinCoverage float64 // minimum percent of the reference covered, inclusive
}

// Backend implements Thresholds.
func (KMAThresholds) Backend() Backend { return KMA }

func (t KMAThresholds) keep(h *RawHit) bool {
	return h.PercentIdentity >= t.MinIdentity && h.Coverage >= t.MinCoverage
}

// Default threshold sets. Every bound is independently overridable per
// database via the command line.
var (
	DefaultBlastThresholds = BlastThresholds{
		MinIdentity: 90, // -min-identity
		MinCoverage: 60, // -min-coverage
	}
	DefaultSRST2Thresholds = SRST2Thresholds{
		MinIdentity:         90, // -min-identity
		MinCoverage:         60, // -min-coverage
		MaxDivergence:       10, // -max-divergence
		MaxMismatches:       10, // -max-mismatches
		MaxUnalignedOverlap: 10, // -max-unaligned-overlap
	}
	DefaultKMAThresholds = KMAThresholds{
		MinIdentity: 90, // -min-identity
		MinCoverage: 60, // -min-coverage
	}
)
