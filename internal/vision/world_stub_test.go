package vision

import "math"

// stubWorld is a minimal sparse World for tests: unit cells, floor-based
// coordinate mapping.
type stubWorld struct {
	cells map[GridCoord]CellOcclusion
}

func newStubWorld() *stubWorld {
	return &stubWorld{cells: make(map[GridCoord]CellOcclusion)}
}

func (w *stubWorld) set(x, y, z int, occ CellOcclusion) *stubWorld {
	w.cells[GridCoord{X: x, Y: y, Z: z}] = occ
	return w
}

// wall places a full-height opaque cell.
func (w *stubWorld) wall(x, y, z int) *stubWorld {
	return w.set(x, y, z, CellOcclusion{BlocksSight: true, Transparency: 1.0, Height: 3.0})
}

func (w *stubWorld) CellOcclusionAt(c GridCoord) *CellOcclusion {
	if occ, ok := w.cells[c]; ok {
		return &occ
	}
	return nil
}

func (w *stubWorld) WorldToGrid(p Vec3) GridCoord {
	return GridCoord{
		X: int(math.Floor(p.X)),
		Y: int(math.Floor(p.Y)),
		Z: int(math.Floor(p.Z)),
	}
}

func (w *stubWorld) GridToWorld(c GridCoord) Vec3 {
	return Vec3{
		X: float64(c.X) + 0.5,
		Y: float64(c.Y) + 0.5,
		Z: float64(c.Z) + 0.5,
	}
}
