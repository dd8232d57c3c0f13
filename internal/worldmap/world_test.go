package worldmap

import (
	"testing"

	"github.com/Garsondee/Grid-Sight/internal/vision"
)

func TestRoundTripCoordinates(t *testing.T) {
	for _, size := range []float64{0.5, 1.0, 2.0, 3.7} {
		g := New(WithCellSize(size))
		coords := []vision.GridCoord{
			{}, {X: 1}, {X: -1}, {X: 17, Y: -9, Z: 4}, {X: -100, Y: 100, Z: -3},
		}
		for _, c := range coords {
			if got := g.WorldToGrid(g.GridToWorld(c)); got != c {
				t.Errorf("cell size %v: round trip %v -> %v", size, c, got)
			}
		}
	}
}

func TestWorldToGrid_FloorSemantics(t *testing.T) {
	g := New()
	if got := g.WorldToGrid(vision.Vec3{X: 0.99, Y: 0.01}); got != (vision.GridCoord{}) {
		t.Fatalf("(0.99,0.01,0) should map to the origin cell, got %v", got)
	}
	if got := g.WorldToGrid(vision.Vec3{X: -0.01}); got != (vision.GridCoord{X: -1}) {
		t.Fatalf("negative positions floor toward -inf, got %v", got)
	}
}

func TestEmptyWorldIsAllAir(t *testing.T) {
	g := New()
	if occ := g.CellOcclusionAt(vision.GridCoord{X: 5, Y: 5}); occ != nil {
		t.Fatalf("empty world returned occlusion %+v", occ)
	}
	if g.CellCount() != 0 {
		t.Fatalf("empty world has %d cells", g.CellCount())
	}
}

func TestWithMaterial_FillsColumn(t *testing.T) {
	g := New(WithMaterial(2, 3, 0, MatWall)) // wall height 3.0 → three layers
	for z := 0; z < 3; z++ {
		occ := g.CellOcclusionAt(vision.GridCoord{X: 2, Y: 3, Z: z})
		if occ == nil || !occ.BlocksSight {
			t.Fatalf("wall layer z=%d missing", z)
		}
	}
	if g.CellOcclusionAt(vision.GridCoord{X: 2, Y: 3, Z: 3}) != nil {
		t.Fatal("wall should stop at its height")
	}
}

func TestWithCell_PlacesExactlyOneCell(t *testing.T) {
	occ := vision.CellOcclusion{Transparency: 0.3, Height: 5.0}
	g := New(WithCell(1, 1, 2, occ))
	got := g.CellOcclusionAt(vision.GridCoord{X: 1, Y: 1, Z: 2})
	if got == nil || got.Transparency != 0.3 {
		t.Fatalf("cell data = %+v, want the literal occlusion", got)
	}
	// Unlike the material options, no column fill: one cell only.
	if g.CellCount() != 1 {
		t.Fatalf("placed %d cells, want 1", g.CellCount())
	}
}

func TestWithMaterial_LowMaterialSingleLayer(t *testing.T) {
	g := New(WithMaterial(0, 0, 0, MatRubble)) // height 1.0
	if g.CellOcclusionAt(vision.GridCoord{Z: 1}) != nil {
		t.Fatal("rubble should occupy only the ground layer")
	}
}

func TestWithBox_PerimeterOnly(t *testing.T) {
	g := New(WithBox(0, 0, 4, 4, 0, MatConcreteWall, 0))
	if g.CellOcclusionAt(vision.GridCoord{X: 2, Y: 2}) != nil {
		t.Fatal("box interior should stay open")
	}
	for _, c := range []vision.GridCoord{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 2, Y: 0}, {X: 0, Y: 2}} {
		if g.CellOcclusionAt(c) == nil {
			t.Fatalf("perimeter cell %v missing", c)
		}
	}
}

func TestWithBox_Windows(t *testing.T) {
	g := New(WithBox(0, 0, 9, 9, 0, MatWall, 5))
	windows := 0
	g.Cells(func(c vision.GridCoord, occ *vision.CellOcclusion) {
		if c.Z == 0 && !occ.BlocksSight {
			windows++
		}
	})
	if windows == 0 {
		t.Fatal("windowEvery=5 placed no windows")
	}
}

func TestWithClear_CutsDoorway(t *testing.T) {
	g := New(
		WithWallLine(0, 0, 6, 0, 0, MatWall),
		WithClear(3, 0, 3, 0, 0, 2),
	)
	for z := 0; z < 3; z++ {
		if g.CellOcclusionAt(vision.GridCoord{X: 3, Z: z}) != nil {
			t.Fatalf("doorway layer z=%d not cleared", z)
		}
	}
	if g.CellOcclusionAt(vision.GridCoord{X: 2}) == nil {
		t.Fatal("wall next to the doorway vanished")
	}
}

func TestScenarios_BuildAndAreDeterministic(t *testing.T) {
	for _, name := range ScenarioNames {
		g := BuildScenario(name, 42)
		if g == nil {
			t.Fatalf("scenario %q did not build", name)
		}
		if name != "open-field" && g.CellCount() == 0 {
			t.Fatalf("scenario %q is empty", name)
		}
	}
	if BuildScenario("no-such-place", 1) != nil {
		t.Fatal("unknown scenario should return nil")
	}

	a := ForestEdge(7)
	b := ForestEdge(7)
	if a.CellCount() != b.CellCount() {
		t.Fatalf("same seed produced different forests: %d vs %d cells", a.CellCount(), b.CellCount())
	}
	diff := false
	a.Cells(func(c vision.GridCoord, occ *vision.CellOcclusion) {
		got := b.CellOcclusionAt(c)
		if got == nil || *got != *occ {
			diff = true
		}
	})
	if diff {
		t.Fatal("same seed produced different cell contents")
	}
}

func TestCourtyard_SightSemantics(t *testing.T) {
	g := Courtyard()
	cp := vision.DefaultCapability()
	cp.BaseRange = 40

	inside := vision.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	outside := vision.Vec3{X: 0.5, Y: -20.5, Z: 0.5}

	// Straight out through the gate: rubble is below eye height.
	rep := vision.CheckLineOfSight(inside, outside, cp, vision.ClearDay(), g, false)
	if rep.Result != vision.LOSClear {
		t.Fatalf("gate line graded %v, want clear", rep.Result)
	}

	// Through the west wall: no opening on that bearing.
	west := vision.Vec3{X: -20.5, Y: 0.5, Z: 0.5}
	rep = vision.CheckLineOfSight(inside, west, cp, vision.ClearDay(), g, false)
	if rep.Result == vision.LOSClear {
		t.Fatal("sight through the solid west wall graded clear")
	}
}
