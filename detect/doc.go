// Package detect consolidates raw gene-detection hits from
// heterogeneous backends (BLAST contig alignment, SRST2 and KMA read
// mapping) into one unified, de-duplicated hit set per reference
// database.
//
// The pipeline for one (sample, database, backend) run is:
//
//	raw backend table -> ParseBlastTabular/ParseSRST2FullGenes/ParseKMARes
//	  -> Filter -> SelectBest -> MapNames [-> AttachAlignments]
//	  -> SortHits -> WriteHits
//
// The engine is a bounded, synchronous in-memory transform. It never
// retries, and it performs no I/O outside the database loaders.
// Multiple runs may share one DatabaseIndex and ClusterPartition
// concurrently since neither is mutated after loading.
package detect
