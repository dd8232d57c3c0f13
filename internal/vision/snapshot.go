package vision

// Target is a candidate entity for an observer snapshot. The ID is opaque to
// the core; the caller keys its own bookkeeping with it.
type Target struct {
	ID       int
	Position Vec3
}

// Snapshot is everything one observer can currently see: the visible cell
// set with per-cell factors, and the targets confirmed by an entity-level
// sight check. Produced fresh per call; retention is the caller's business.
type Snapshot struct {
	VisibleCells      []GridCoord
	VisibilityFactors []float64
	// VisibleTargets maps target ID to its line-of-sight report. Only
	// targets graded Clear or PartiallyVisible appear.
	VisibleTargets map[int]LOSReport

	cellSet map[GridCoord]struct{}
}

// CanSeeCell reports whether the cell is in the snapshot's visible set.
func (s *Snapshot) CanSeeCell(c GridCoord) bool {
	_, ok := s.cellSet[c]
	return ok
}

// Observe computes one observer's full visibility snapshot: a shadow-casting
// field of view, then a point-to-point confirmation for every candidate
// target whose cell the FOV already marked visible. The second pass matters
// because targets have sub-cell positions; a cell can be visible while the
// exact line to an entity inside it is not.
//
// The FOV sweep stays on the observer's own z plane so its cells line up
// with target cells; eye height enters only through the look-over blocking
// rule, never by shifting the sweep plane.
func Observe(pos Vec3, cp Capability, env Environment, w World, focused bool, targets []Target) Snapshot {
	fov := CalculateFOV(pos, cp, env, w, focused)

	snap := Snapshot{
		VisibleCells:      fov.VisibleCells,
		VisibilityFactors: fov.VisibilityFactors,
		VisibleTargets:    make(map[int]LOSReport),
		cellSet:           make(map[GridCoord]struct{}, len(fov.VisibleCells)),
	}
	for _, c := range fov.VisibleCells {
		snap.cellSet[c] = struct{}{}
	}

	for _, t := range targets {
		if !snap.CanSeeCell(w.WorldToGrid(t.Position)) {
			continue
		}
		// Entity confirmation is always unfocused: focus narrows the cone,
		// not the ability to resolve something already in a visible cell.
		rep := CheckLineOfSight(pos, t.Position, cp, env, w, false)
		if rep.Result.Visible() {
			snap.VisibleTargets[t.ID] = rep
		}
	}

	return snap
}
