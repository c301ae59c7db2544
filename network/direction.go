package network

// CheckDirection reports whether a forward trip from startStopID to
// endStopID is physically possible on the route, and how many stops
// apart they are.
//
// Forward means endIndex > startIndex in the route's stop order. On a
// circular route, endIndex < startIndex is also valid by wrapping
// around the loop: stopsBetween = (N - startIndex) + endIndex.
//
// Convention for closed loops whose terminal stop duplicates the first
// (stops like [S0,S1,S2,S0]): the duplicate terminal entry is excluded
// from N, so N=3 there and S2->S0 wraps with stopsBetween=1. The index
// map keeps the first occurrence of a duplicated id.
func (r *Route) CheckDirection(startStopID, endStopID string) (valid bool, stopsBetween int) {
	if startStopID == endStopID {
		return false, 0
	}

	circular := r.Circular()
	n := len(r.Stops)
	if circular && n > 1 && r.Stops[0].ID == r.Stops[n-1].ID {
		n-- // terminal duplicate counted once
	}

	idx := make(map[string]int, n)
	for i := 0; i < n; i++ {
		if _, seen := idx[r.Stops[i].ID]; !seen {
			idx[r.Stops[i].ID] = i
		}
	}

	startIdx, okStart := idx[startStopID]
	endIdx, okEnd := idx[endStopID]
	if !okStart || !okEnd {
		return false, 0
	}

	if endIdx > startIdx {
		return true, endIdx - startIdx
	}
	if circular && endIdx < startIdx {
		return true, (n - startIdx) + endIdx
	}
	return false, 0
}
