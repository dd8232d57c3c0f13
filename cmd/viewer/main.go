package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Grid-Sight/internal/viewer"
	"github.com/Garsondee/Grid-Sight/internal/worldmap"
)

func main() {
	scenario := flag.String("scenario", "courtyard", "scenario to load: "+strings.Join(worldmap.ScenarioNames, ", "))
	seed := flag.Int64("seed", 1, "seed for randomized scenarios")
	flag.Parse()

	world := worldmap.BuildScenario(*scenario, *seed)
	if world == nil {
		log.Fatalf("unknown scenario %q (valid: %s)", *scenario, strings.Join(worldmap.ScenarioNames, ", "))
	}

	ebiten.SetWindowTitle("Grid Sight: " + *scenario)
	ebiten.SetWindowSize(1040, 760)
	if err := ebiten.RunGame(viewer.New(world, *scenario)); err != nil {
		log.Fatal(err)
	}
}
