// Package worldmap provides a concrete sparse tile world for the vision
// core: a map-backed implementation of vision.World plus scenario builders
// used by the debug viewer, the headless report and the integration tests.
package worldmap

import (
	"math"

	"github.com/Garsondee/Grid-Sight/internal/vision"
)

// GridWorld is a sparse, immutable-after-construction tile world. Reads are
// plain map lookups, so any number of observers may query it concurrently.
type GridWorld struct {
	cellSize float64
	cells    map[vision.GridCoord]*vision.CellOcclusion
}

// Option configures a GridWorld during construction.
type Option func(*GridWorld)

// New builds a GridWorld with cell size 1.0 and applies the options in order.
func New(opts ...Option) *GridWorld {
	g := &GridWorld{
		cellSize: 1.0,
		cells:    make(map[vision.GridCoord]*vision.CellOcclusion),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithCellSize sets the world-units-per-cell scale. Must be > 0.
func WithCellSize(size float64) Option {
	return func(g *GridWorld) { g.cellSize = size }
}

// WithCell places explicit occlusion data in exactly one cell.
func WithCell(x, y, z int, occ vision.CellOcclusion) Option {
	return func(g *GridWorld) {
		c := occ
		g.cells[vision.GridCoord{X: x, Y: y, Z: z}] = &c
	}
}

// placeColumn writes the occlusion into every z layer its height spans, so a
// 3-unit wall occupies three 1-unit cells and an eye-level sight line at
// z=1 still runs into it. A cell is always at least one layer tall.
func (g *GridWorld) placeColumn(x, y, z int, occ vision.CellOcclusion) {
	layers := int(math.Ceil(occ.Height / g.cellSize))
	if layers < 1 {
		layers = 1
	}
	for dz := 0; dz < layers; dz++ {
		c := occ
		g.cells[vision.GridCoord{X: x, Y: y, Z: z + dz}] = &c
	}
}

// WithMaterial fills one column with a canonical material.
func WithMaterial(x, y, z int, m Material) Option {
	return func(g *GridWorld) { g.placeColumn(x, y, z, Occlusion(m)) }
}

// WithWallLine fills every cell on the straight line between two coordinates
// with the material. Diagonal lines follow the same digital line the tracer
// walks, so a wall built this way has no sight-sized gaps.
func WithWallLine(x0, y0, x1, y1, z int, m Material) Option {
	return func(g *GridWorld) {
		occ := Occlusion(m)
		for _, c := range vision.LineTiles(
			vision.GridCoord{X: x0, Y: y0, Z: z},
			vision.GridCoord{X: x1, Y: y1, Z: z},
		) {
			g.placeColumn(c.X, c.Y, c.Z, occ)
		}
	}
}

// WithBox builds a hollow rectangle of walls between opposite corners.
// windowEvery > 0 replaces every n-th perimeter cell with a window.
func WithBox(x0, y0, x1, y1, z int, m Material, windowEvery int) Option {
	return func(g *GridWorld) {
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		wall := Occlusion(m)
		window := Occlusion(MatWindow)

		n := 0
		place := func(x, y int) {
			cell := wall
			if windowEvery > 0 && n%windowEvery == windowEvery-1 {
				cell = window
			}
			n++
			g.placeColumn(x, y, z, cell)
		}

		for x := x0; x <= x1; x++ {
			place(x, y0)
			place(x, y1)
		}
		for y := y0 + 1; y < y1; y++ {
			place(x0, y)
			place(x1, y)
		}
	}
}

// WithFill floods a solid rectangle of cells with the material.
func WithFill(x0, y0, x1, y1, z int, m Material) Option {
	return func(g *GridWorld) {
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		occ := Occlusion(m)
		for x := x0; x <= x1; x++ {
			for y := y0; y <= y1; y++ {
				g.placeColumn(x, y, z, occ)
			}
		}
	}
}

// WithClear deletes every cell in a rectangle across the z layer range,
// leaving open air. Applied after a box or fill it cuts doorways and
// breaches.
func WithClear(x0, y0, x1, y1, z0, z1 int) Option {
	return func(g *GridWorld) {
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		for x := x0; x <= x1; x++ {
			for y := y0; y <= y1; y++ {
				for z := z0; z <= z1; z++ {
					delete(g.cells, vision.GridCoord{X: x, Y: y, Z: z})
				}
			}
		}
	}
}

// CellOcclusionAt implements vision.World. Nil means open air.
func (g *GridWorld) CellOcclusionAt(c vision.GridCoord) *vision.CellOcclusion {
	return g.cells[c]
}

// WorldToGrid implements vision.World using floor division, so cell (0,0,0)
// spans [0, cellSize) on each axis.
func (g *GridWorld) WorldToGrid(p vision.Vec3) vision.GridCoord {
	return vision.GridCoord{
		X: int(math.Floor(p.X / g.cellSize)),
		Y: int(math.Floor(p.Y / g.cellSize)),
		Z: int(math.Floor(p.Z / g.cellSize)),
	}
}

// GridToWorld implements vision.World, returning the cell center.
func (g *GridWorld) GridToWorld(c vision.GridCoord) vision.Vec3 {
	return vision.Vec3{
		X: (float64(c.X) + 0.5) * g.cellSize,
		Y: (float64(c.Y) + 0.5) * g.cellSize,
		Z: (float64(c.Z) + 0.5) * g.cellSize,
	}
}

// CellSize returns the world-units-per-cell scale.
func (g *GridWorld) CellSize() float64 { return g.cellSize }

// CellCount returns the number of non-air cells.
func (g *GridWorld) CellCount() int { return len(g.cells) }

// Cells calls fn for every non-air cell. Iteration order is unspecified.
func (g *GridWorld) Cells(fn func(vision.GridCoord, *vision.CellOcclusion)) {
	for c, occ := range g.cells {
		fn(c, occ)
	}
}
