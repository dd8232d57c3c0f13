package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/Grid-Sight/internal/vision"
	"github.com/Garsondee/Grid-Sight/internal/worldmap"
)

// observerSpec places one named capability preset in the world.
type observerSpec struct {
	name string
	cp   vision.Capability
	pos  vision.Vec3
}

// observerStats is one observer's outcome in one run.
type observerStats struct {
	name        string
	rangeUnits  float64
	cells       int
	meanFactor  float64
	targetsSeen int
	grades      map[string]int // LOS grade name → count over all candidates
}

type runStats struct {
	runIndex  int
	seed      int64
	observers []observerStats
}

func main() {
	var runs int
	var scenario string
	var seedBase int64
	var seedStep int64
	var timeOfDay float64
	var fog float64
	var focused bool

	flag.IntVar(&runs, "runs", 5, "number of report runs")
	flag.StringVar(&scenario, "scenario", "courtyard", "scenario name: "+strings.Join(worldmap.ScenarioNames, ", "))
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&timeOfDay, "time-of-day", 0.5, "0 = midnight, 0.5 = noon")
	flag.Float64Var(&fog, "fog", 0.0, "fog density 0-1")
	flag.BoolVar(&focused, "focused", false, "observers use aiming/optics mode")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if worldmap.BuildScenario(scenario, seedBase) == nil {
		fmt.Printf("error: unsupported scenario %q (supported: %s)\n", scenario, strings.Join(worldmap.ScenarioNames, ", "))
		return
	}

	env := vision.Environment{TimeOfDay: timeOfDay, AmbientLight: 1.0, FogDensity: fog}

	fmt.Printf("=== Headless Visibility Report ===\n")
	fmt.Printf("scenario=%s runs=%d seed_base=%d seed_step=%d time_of_day=%.2f fog=%.2f focused=%v\n\n",
		scenario, runs, seedBase, seedStep, timeOfDay, fog, focused)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(i+1, seed, scenario, env, focused)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
	printFogComparison(scenario, seedBase, timeOfDay, focused)
}

// roster returns the observers a report run places in every scenario.
func roster() []observerSpec {
	return []observerSpec{
		{name: "default", cp: vision.DefaultCapability(), pos: vision.Vec3{X: 0.5, Y: 0.5, Z: 0.5}},
		{name: "guard", cp: vision.GuardCapability(), pos: vision.Vec3{X: 10.5, Y: -10.5, Z: 0.5}},
		{name: "creature", cp: vision.CreatureCapability(40, 270), pos: vision.Vec3{X: -10.5, Y: 10.5, Z: 0.5}},
	}
}

// candidateTargets rings the map centre so every observer has something to
// look for through the scenario's obstructions.
func candidateTargets() []vision.Target {
	ring := []vision.Vec3{
		{X: 15.5, Y: 0.5, Z: 0.5},
		{X: -15.5, Y: 0.5, Z: 0.5},
		{X: 0.5, Y: 15.5, Z: 0.5},
		{X: 0.5, Y: -15.5, Z: 0.5},
		{X: 11.5, Y: 11.5, Z: 0.5},
		{X: -11.5, Y: -11.5, Z: 0.5},
		{X: 5.5, Y: 5.5, Z: 0.5},
		{X: -5.5, Y: 2.5, Z: 0.5},
	}
	targets := make([]vision.Target, len(ring))
	for i, p := range ring {
		targets[i] = vision.Target{ID: i + 1, Position: p}
	}
	return targets
}

func runScenario(runIndex int, seed int64, scenario string, env vision.Environment, focused bool) runStats {
	world := worldmap.BuildScenario(scenario, seed)
	targets := candidateTargets()

	rs := runStats{runIndex: runIndex, seed: seed}
	for _, spec := range roster() {
		snap := vision.Observe(spec.pos, spec.cp, env, world, focused, targets)

		sum := 0.0
		for _, f := range snap.VisibilityFactors {
			sum += f
		}
		mean := 0.0
		if len(snap.VisibilityFactors) > 0 {
			mean = sum / float64(len(snap.VisibilityFactors))
		}

		grades := map[string]int{}
		for _, t := range targets {
			rep := vision.CheckLineOfSight(spec.pos, t.Position, spec.cp, env, world, focused)
			grades[rep.Result.String()]++
		}

		rs.observers = append(rs.observers, observerStats{
			name:        spec.name,
			rangeUnits:  spec.cp.EffectiveRange(env, focused),
			cells:       len(snap.VisibleCells),
			meanFactor:  mean,
			targetsSeen: len(snap.VisibleTargets),
			grades:      grades,
		})
	}
	return rs
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	for _, o := range rs.observers {
		fmt.Printf("  %-8s range=%5.1f cells=%5d mean_factor=%.3f targets_seen=%d grades=[%s]\n",
			o.name, o.rangeUnits, o.cells, o.meanFactor, o.targetsSeen, formatGrades(o.grades))
	}
	fmt.Println()
}

// formatGrades renders a grade histogram as "clear=3 partial=1 too-far=4".
func formatGrades(grades map[string]int) string {
	keys := make([]string, 0, len(grades))
	for k := range grades {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, grades[k]))
	}
	return strings.Join(parts, " ")
}

func printAggregate(all []runStats) {
	type agg struct {
		cellSum   int
		factorSum float64
		seenSum   int
		count     int
	}
	byName := map[string]*agg{}
	var order []string

	for _, rs := range all {
		for _, o := range rs.observers {
			a, ok := byName[o.name]
			if !ok {
				a = &agg{}
				byName[o.name] = a
				order = append(order, o.name)
			}
			a.cellSum += o.cells
			a.factorSum += o.meanFactor
			a.seenSum += o.targetsSeen
			a.count++
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	for _, name := range order {
		a := byName[name]
		n := float64(a.count)
		fmt.Printf("  %-8s avg_cells=%.1f avg_mean_factor=%.3f avg_targets_seen=%.1f\n",
			name, float64(a.cellSum)/n, a.factorSum/n, float64(a.seenSum)/n)
	}
}

// printFogComparison shows the visible set shrinking as fog thickens, for
// the default observer in the requested scenario.
func printFogComparison(scenario string, seed int64, timeOfDay float64, focused bool) {
	world := worldmap.BuildScenario(scenario, seed)
	spec := roster()[0]

	fmt.Println("\n=== Fog Comparison (default observer) ===")
	for _, fog := range []float64{0.0, 0.5, 1.0} {
		env := vision.Environment{TimeOfDay: timeOfDay, AmbientLight: 1.0, FogDensity: fog}
		res := vision.CalculateFOV(spec.pos, spec.cp, env, world, focused)
		fmt.Printf("  fog=%.1f range=%5.1f cells=%d\n",
			fog, spec.cp.EffectiveRange(env, focused), len(res.VisibleCells))
	}
}
