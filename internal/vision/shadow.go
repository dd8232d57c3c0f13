package vision

// shadowInterval is a slope range within one octant's sweep that is known to
// be blocked from the observer.
type shadowInterval struct {
	start, end float64
}

// shadowList holds the blocked slope intervals of one octant, sorted by
// start slope and kept disjoint: every insert merges with any overlapping or
// adjacent intervals immediately.
type shadowList struct {
	intervals []shadowInterval
}

// contains reports whether the slope falls inside any blocked interval.
func (s *shadowList) contains(slope float64) bool {
	for _, iv := range s.intervals {
		if slope >= iv.start && slope <= iv.end {
			return true
		}
	}
	return false
}

// full reports whether the list has collapsed to the whole [-1, 1] span,
// meaning nothing in this octant remains visible.
func (s *shadowList) full() bool {
	return len(s.intervals) == 1 && s.intervals[0].start <= -1 && s.intervals[0].end >= 1
}

// add inserts a new blocked interval, coalescing it with every interval it
// overlaps so that the list stays sorted and disjoint.
func (s *shadowList) add(n shadowInterval) {
	// Position of the first interval starting at or after the new one.
	idx := 0
	for idx < len(s.intervals) && s.intervals[idx].start < n.start {
		idx++
	}

	lo := idx
	if lo > 0 && s.intervals[lo-1].end >= n.start {
		lo--
	}
	hi := idx
	for hi < len(s.intervals) && s.intervals[hi].start <= n.end {
		hi++
	}

	if lo == hi {
		// No overlap: plain insert at idx.
		s.intervals = append(s.intervals, shadowInterval{})
		copy(s.intervals[idx+1:], s.intervals[idx:])
		s.intervals[idx] = n
		return
	}

	merged := n
	if s.intervals[lo].start < merged.start {
		merged.start = s.intervals[lo].start
	}
	if s.intervals[hi-1].end > merged.end {
		merged.end = s.intervals[hi-1].end
	}

	s.intervals = append(s.intervals[:lo], append([]shadowInterval{merged}, s.intervals[hi:]...)...)
}
