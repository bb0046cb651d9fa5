// speccheck validates the yaml specs and prints what they would build,
// so config edits can be checked without launching the demo.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/milk9111/freerun/config"
	"github.com/milk9111/freerun/obstacle"
)

func main() {
	verbose := flag.Bool("v", false, "print every sequence and surface")
	flag.Parse()

	ability, err := config.LoadAbilitySpec()
	if err != nil {
		log.Fatalf("ability spec: %v", err)
	}
	level, err := config.LoadLevelSpec()
	if err != nil {
		log.Fatalf("level spec: %v", err)
	}

	fmt.Printf("ability: %d layers, %d sequences, thresholds %.2f/%.2f/%.0f\n",
		len(ability.Layers), len(ability.Sequences),
		ability.Tolerances.ContactThreshold, ability.Tolerances.MaxLinearError, ability.Tolerances.MaxAngularError)
	fmt.Printf("level %q: %d surfaces, spawn (%.1f, %.1f, %.1f)\n",
		level.Name, len(level.Surfaces), level.Spawn.X, level.Spawn.Y, level.Spawn.Z)

	table := ability.LayerTable()
	missing := 0
	for _, s := range level.Surfaces {
		if s.Layer != 0 && table.Classify(obstacle.Layer(s.Layer)) == obstacle.None {
			fmt.Fprintf(os.Stderr, "warning: surface %q layer %d has no category\n", s.Name, s.Layer)
			missing++
		}
	}

	if *verbose {
		layers := make([]int, 0, len(ability.Layers))
		for l := range ability.Layers {
			layers = append(layers, l)
		}
		sort.Ints(layers)
		for _, l := range layers {
			fmt.Printf("  layer %d -> %s\n", l, ability.Layers[l])
		}
		for _, seq := range ability.Sequences {
			fmt.Printf("  sequence %s (%s) %.2fs contact %.2f\n", seq.Name, seq.Category, seq.Duration, seq.ContactDistance)
		}
		for _, s := range level.Surfaces {
			fmt.Printf("  surface %s layer %d at (%.1f, %.1f, %.1f)\n", s.Name, s.Layer, s.Position.X, s.Position.Y, s.Position.Z)
		}
	}

	if missing > 0 {
		os.Exit(1)
	}
}
