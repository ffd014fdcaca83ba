package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"speakup-analytics/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, messy, surge")
	distribution := flag.String("distribution", "uniform", "Distribution of submission ages: uniform, weibull")
	outDir := flag.String("out", "./.cache", "Output directory for mock files")
	name := flag.String("name", "complaints", "Snapshot file name without extension")
	count := flag.Int("count", 500, "Number of complaints to generate")
	days := flag.Int("days", 365, "Spread submissions over this many past days")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed for reproducible output")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario:     *scenario,
		Distribution: *distribution,
		Count:        *count,
		Days:         *days,
		Now:          time.Now(),
		Seed:         *seed,
	}

	fmt.Printf("Generating scenario '%s' (Distribution: %s, Count: %d, Days: %d, Seed: %d) to %s...\n",
		cfg.Scenario, cfg.Distribution, cfg.Count, cfg.Days, cfg.Seed, *outDir)

	records := engine.Generate(cfg)

	path, err := engine.Save(*outDir, *name, records)
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. Wrote %s\n", path)
}
