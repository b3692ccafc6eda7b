package extract

// HoverableRanges returns every definition and reference range in the graph,
// sorted by start byte, suitable for a client to underline as navigable.
// Overlapping duplicate ranges (a name node shared between a definition and
// an enclosing reference-like construct) are deduplicated by exact bounds.
func HoverableRanges(g *ScopeGraph) []TextRange {
	if g == nil {
		return nil
	}
	seen := make(map[[2]int]bool, len(g.Definitions)+len(g.References))
	out := make([]TextRange, 0, len(g.Definitions)+len(g.References))
	add := func(r TextRange) {
		key := [2]int{r.Start.Byte, r.End.Byte}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, r)
	}
	for _, d := range g.Definitions {
		add(d.Range)
	}
	for _, r := range g.References {
		add(r.Range)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Start.Byte > out[j].Start.Byte; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// OccurrenceAt returns the innermost Occurrence whose range contains byte
// offset b, preferring a Reference over a Definition when both exist at the
// same position (a definition's name token is itself also its own mention).
func (g *ScopeGraph) OccurrenceAt(b int) (Occurrence, bool) {
	var best *Occurrence
	for _, occ := range g.List() {
		if b < occ.Range.Start.Byte || b >= occ.Range.End.Byte {
			continue
		}
		if best == nil || occ.Range.Len() < best.Range.Len() ||
			(occ.Range.Len() == best.Range.Len() && occ.Reference && !best.Reference) {
			o := occ
			best = &o
		}
	}
	if best == nil {
		return Occurrence{}, false
	}
	return *best, true
}
