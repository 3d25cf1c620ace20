package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/raphcraft/craftsolve/internal/boundary"
	"github.com/raphcraft/craftsolve/internal/craft"
	"github.com/raphcraft/craftsolve/internal/storage"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")

	maxCP         = flag.Int("cp", 400, "crafter max CP")
	maxDurability = flag.Int("durability", 70, "recipe max durability")
	maxProgress   = flag.Uint("progress", 4000, "recipe max progress")
	maxQuality    = flag.Uint("quality", 12000, "recipe max quality")
	baseProgress  = flag.Uint("base-progress", 220, "crafter base progress efficiency")
	baseQuality   = flag.Uint("base-quality", 180, "crafter base quality efficiency")
	jobLevel      = flag.Uint("level", 90, "crafter job level")
	manipulation  = flag.Bool("manipulation", true, "manipulation trait unlocked")
	heartAndSoul  = flag.Bool("heart-and-soul", false, "heart and soul trait unlocked")
	quickInnov    = flag.Bool("quick-innovation", false, "quick innovation trait unlocked")
	trainedEye    = flag.Bool("trained-eye", false, "trained eye trait unlocked")
	adversarial   = flag.Bool("adversarial", false, "assume worst-case Good/Excellent condition rolls")
	quiet         = flag.Bool("quiet", false, "suppress progress and intermediate-solution logging")
	noCache       = flag.Bool("no-cache", false, "skip the on-disk solve cache")
)

func main() {
	flag.Parse()

	if *maxDurability <= 0 || *maxDurability > 127 {
		fmt.Fprintf(os.Stderr, "--durability must be between 1 and 127, got %d\n", *maxDurability)
		os.Exit(1)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", *cpuprofile)
	}

	settings := buildSettings()

	var cache *storage.Cache
	if !*noCache {
		var err error
		cache, err = storage.Open()
		if err != nil {
			log.Printf("solve cache unavailable, continuing without it: %v", err)
		} else {
			defer cache.Close()
		}
	}

	w := boundary.NewWorker(settings, nil)

	if cache != nil {
		if sol, found, err := cache.Lookup(w.Fingerprint()); err != nil {
			log.Printf("cache lookup failed: %v", err)
		} else if found {
			log.Printf("served from cache: %d steps, quality %d", len(sol.Actions), sol.Score.Quality)
			fmt.Println(renderMacro(sol.Actions))
			return
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	w.Run(ctx)

	var final boundary.SolverEvent
	for e := range w.Events() {
		switch e.Kind {
		case boundary.EventProgress:
			if !*quiet {
				log.Printf("progress: %.1f%%", e.Fraction*100)
			}
		case boundary.EventIntermediateSolution:
			if !*quiet {
				log.Printf("intermediate macro: %d steps, quality %d", len(e.Solution.Actions), e.Solution.Score.Quality)
			}
		case boundary.EventFinalSolution:
			final = e
		}
	}
	elapsed := time.Since(start)

	if len(final.Solution.Actions) == 0 {
		fmt.Fprintln(os.Stderr, "no feasible macro found")
		os.Exit(1)
	}

	if cache != nil {
		if err := cache.Store(w.Fingerprint(), final.Solution, elapsed); err != nil {
			log.Printf("failed to cache solution: %v", err)
		}
	}

	fmt.Println(renderMacro(final.Solution.Actions))
}

func buildSettings() craft.Settings {
	allowed := craft.FromLevel(uint8(*jobLevel), *manipulation)
	if !*heartAndSoul {
		allowed = allowed.Remove(craft.HeartAndSoul)
	}
	if !*quickInnov {
		allowed = allowed.Remove(craft.QuickInnovation)
	}
	if !*trainedEye {
		allowed = allowed.Remove(craft.TrainedEye)
	}

	return craft.Settings{
		MaxCP:          int16(*maxCP),
		MaxDurability:  int16(*maxDurability),
		MaxProgress:    uint32(*maxProgress),
		MaxQuality:     uint32(*maxQuality),
		BaseProgress:   uint32(*baseProgress),
		BaseQuality:    uint32(*baseQuality),
		JobLevel:       uint8(*jobLevel),
		AllowedActions: allowed,
		Adversarial:    *adversarial,
	}
}

// renderMacro formats a solved action sequence the way the in-game macro
// editor expects one line per action: /ac "<name>" <wait.<seconds>>.
func renderMacro(actions []craft.Action) string {
	out := ""
	for i, a := range actions {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("/ac \"%s\" <wait.%d>", a.DisplayName(), a.TimeCost())
	}
	return out
}
