package worldmap

import "math/rand"

// ScenarioNames lists the scenarios the CLIs accept, in menu order.
var ScenarioNames = []string{"open-field", "courtyard", "forest-edge"}

// BuildScenario constructs a named scenario world. Unknown names return nil.
// The seed only matters for scenarios with randomized placement.
func BuildScenario(name string, seed int64) *GridWorld {
	switch name {
	case "open-field":
		return OpenField()
	case "courtyard":
		return Courtyard()
	case "forest-edge":
		return ForestEdge(seed)
	}
	return nil
}

// OpenField is an empty world: every cell is air.
func OpenField() *GridWorld {
	return New()
}

// Courtyard is a walled compound with window slits, an interior smoke fire,
// and rubble near the breach. Observers inside the yard see out only through
// the windows and the gate gap on the south wall.
func Courtyard() *GridWorld {
	return New(
		WithBox(-12, -12, 12, 12, 0, MatWall, 7),
		// Gate: breach the south wall, leave rubble in the gap.
		WithClear(-1, -12, 1, -12, 0, 2),
		WithFill(-1, -12, 1, -12, 0, MatRubble),
		// Inner storehouse with a window on its east face.
		WithBox(3, 3, 8, 8, 0, MatConcreteWall, 0),
		WithMaterial(8, 5, 0, MatWindow),
		// Smoke from a fire in the northwest corner.
		WithFill(-9, 7, -7, 9, 0, MatSmoke),
	)
}

// ForestEdge scatters hedges and tall grass over a band of the map, with a
// single watchtower wall line. Placement is deterministic for a given seed.
func ForestEdge(seed int64) *GridWorld {
	rng := rand.New(rand.NewSource(seed))

	opts := []Option{
		WithWallLine(-2, 14, 2, 14, 0, MatWall),
	}
	for i := 0; i < 120; i++ {
		x := rng.Intn(41) - 20
		y := rng.Intn(21) + 4
		m := MatTallGrass
		if rng.Float64() < 0.35 {
			m = MatHedge
		}
		opts = append(opts, WithMaterial(x, y, 0, m))
	}
	return New(opts...)
}
