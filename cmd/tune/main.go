// Package main tunes morph and idle-field parameters with gonum's optimizer
// so that shape changes settle in a target time.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/nebula/config"
)

// EvalRow is one line of tune_log.csv.
type EvalRow struct {
	Eval       int     `csv:"eval"`
	Fitness    float64 `csv:"fitness"`
	SettleSec  float64 `csv:"settle_sec"`
	IdleOffset float64 `csv:"idle_offset"`
	LerpSpeed  float64 `csv:"lerp_speed"`
	Repel      float64 `csv:"repel"`
}

// formatDuration formats a duration as MM:SS, or HH:MM:SS when long.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	settleSec := flag.Float64("settle", 1.5, "Target morph settle time in seconds")
	settleEps := flag.Float64("settle-eps", 5, "Mean distance to target counted as settled")
	idleOffset := flag.Float64("idle-offset", 12, "Target mean displacement held by the idle field")
	particles := flag.Int("particles", 2000, "Particles per run")
	maxTicks := flag.Int("max-ticks", 1200, "Tick cap per morph")
	seeds := flag.Int("seeds", 2, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 80, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewEvaluator(params, baseCfg, Targets{
		SettleSec:   *settleSec,
		SettleEps:   *settleEps,
		IdleOffset:  *idleOffset,
		ParticleCap: *particles,
		MaxTicks:    *maxTicks,
	}, evalSeeds)

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	headerWritten := false
	bestFitness := 1e18
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			res := evaluator.Evaluate(raw)
			evalCount++

			if res.Fitness < bestFitness {
				bestFitness = res.Fitness
				bestParams = raw
			}

			row := []*EvalRow{{
				Eval:       evalCount,
				Fitness:    res.Fitness,
				SettleSec:  res.SettleSec,
				IdleOffset: res.IdleOffset,
				LerpSpeed:  raw[0],
				Repel:      raw[1],
			}}
			if headerWritten {
				err = gocsv.MarshalWithoutHeaders(row, logFile)
			} else {
				err = gocsv.Marshal(row, logFile)
				headerWritten = true
			}
			if err != nil {
				log.Printf("failed to log eval: %v", err)
			}

			elapsed := time.Since(startTime)
			fmt.Printf("Eval %d/%d: settle=%.2fs idle=%.1f fitness=%.4f (best=%.4f) | elapsed: %s\n",
				evalCount, *maxEvals, res.SettleSec, res.IdleOffset, res.Fitness, bestFitness, formatDuration(elapsed))
			return res.Fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	fmt.Printf("Tuning %d parameters, max_evals=%d, seeds=%d, particles=%d\n",
		params.Dim(), *maxEvals, *seeds, *particles)

	initX := params.Normalize(params.ExtractFromConfig(baseCfg))
	result, err := optimize.Minimize(problem, initX, settings, &optimize.NelderMead{})
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
