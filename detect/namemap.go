package detect

// MapNames rewrites each selected hit's standardized id to its
// original allele name and accession using the database index. The
// accession defaults to "-" when the database records none, so the
// field is never empty in reports. When extra is non-nil, the named
// metadata key is attached to every hit under the configured label
// ("-" for sequences missing that key).
//
// Output order is the input order; callers needing a deterministic
// report order sort explicitly (see SortHits).
func MapNames(hits []RawHit, partition ClusterPartition, index *DatabaseIndex, extra *ExtraColumn) ([]Hit, error) {
	out := make([]Hit, 0, len(hits))
	for i := range hits {
		info, err := index.Lookup(hits[i].SeqID)
		if err != nil {
			return nil, err
		}
		cluster, ok := partition[hits[i].SeqID]
		if !ok {
			return nil, consistencyErrorf(
				"sequence %q is not in the cluster partition; reference database and hit stream are out of sync",
				hits[i].SeqID)
		}
		h := Hit{
			Cluster:         cluster,
			Locus:           info.Locus,
			Accession:       "-",
			PercentIdentity: hits[i].PercentIdentity,
			Coverage:        hits[i].Coverage,
			Raw:             hits[i],
		}
		if info.Accession != "" {
			h.Accession = info.Accession
		}
		if extra != nil {
			value := "-"
			if v, ok := info.Metadata[extra.Key]; ok {
				value = v
			}
			h.Extra = &MetadataField{Name: extra.Name, Value: value}
		}
		out = append(out, h)
	}
	return out, nil
}
