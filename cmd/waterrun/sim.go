package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/waterrun/internal/config"
	"github.com/vovakirdan/waterrun/internal/core"
	"github.com/vovakirdan/waterrun/internal/games/waterrun"
	"github.com/vovakirdan/waterrun/internal/session"
	"github.com/vovakirdan/waterrun/internal/storage"
)

var (
	flagSimDifficulty string
	flagSimTicks      int
	flagSimRuns       int
	flagAutopilot     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless simulations",
	Long: `Run the simulation without a terminal UI, as fast as possible, and print
the results. Runs are deterministic: the same seed, difficulty and config
always give the same distance and deliveries.

Without --autopilot the runner never jumps or delivers, which shows how long
an idle runner survives. With --autopilot it jumps hydrants and delivers to
every lit door.

Examples:
  waterrun sim --difficulty normal
  waterrun sim --difficulty hard --autopilot --runs 20 --seed 1
  waterrun sim --difficulty easy --ticks 20000 --autopilot`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty tier: easy, normal, hard")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 5000, "Stop a run after this many ticks")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs; run i uses seed+i")
	simCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Let the autopilot jump and deliver")
}

func runSim(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	d, err := config.ParseDifficulty(flagSimDifficulty)
	if errors.Is(err, config.ErrNoDifficulty) {
		return fmt.Errorf("%w: pass --difficulty easy|normal|hard", err)
	}
	if err != nil {
		return err
	}
	if flagSimRuns < 1 {
		flagSimRuns = 1
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	board, err := storage.Open()
	if err != nil {
		return err
	}
	defer board.Close()

	ctx := context.Background()
	for i := 0; i < flagSimRuns; i++ {
		started := time.Now()
		sum, err := simulate(cfg, d, seed+int64(i), flagSimTicks, flagAutopilot)
		if err != nil {
			return err
		}
		sum.Run = i + 1
		sum.Duration = time.Since(started)
		sum.EndedAt = time.Now()

		logger.Debug("run finished", "run", sum.Run, "seed", sum.Seed, "distance", sum.Distance,
			"deliveries", sum.Deliveries, "skipped", sum.Skipped)
		if err := board.RecordRun(ctx, sum); err != nil {
			return err
		}
	}

	return printBoard(ctx, board, d)
}

// simulate plays one run to game over or the tick limit.
func simulate(cfg config.Config, d config.Difficulty, seed int64, limit int, autopilot bool) (session.Summary, error) {
	sim, err := waterrun.NewSimulation(cfg, d, seed)
	if err != nil {
		return session.Summary{}, err
	}
	if _, err := sim.Start(); err != nil {
		return session.Summary{}, err
	}

	var pilot *waterrun.Autopilot
	if autopilot {
		tier, err := cfg.Tier(d)
		if err != nil {
			return session.Summary{}, err
		}
		pilot = waterrun.NewAutopilot(cfg, tier)
	}

	for sim.Phase() == waterrun.PhaseRunning && sim.Tick() < limit {
		in := core.NewInputFrame()
		if pilot != nil {
			in = pilot.Next(sim.Frame())
		}
		sim.Step(in)
	}

	stats := sim.Stats()
	return session.Summary{
		Difficulty: d,
		Seed:       seed,
		Distance:   stats.Distance,
		Deliveries: stats.Deliveries,
		Ticks:      sim.Tick(),
		Skipped:    sim.SkippedObstacles(),
	}, nil
}

func printBoard(ctx context.Context, board *storage.Board, d config.Difficulty) error {
	runs, err := board.TopRuns(ctx, d, flagSimRuns)
	if err != nil {
		return err
	}
	st, err := board.Stats(ctx, d)
	if err != nil {
		return err
	}

	fmt.Printf("Water Run - %s, %d run(s)\n", d.Label(), st.Runs)
	fmt.Println()
	fmt.Printf("  %-4s  %-20s  %-8s  %-10s  %-7s  %s\n", "Rank", "Seed", "Distance", "Deliveries", "Ticks", "Skipped")
	fmt.Printf("  %-4s  %-20s  %-8s  %-10s  %-7s  %s\n", "----", "----", "--------", "----------", "-----", "-------")
	skipped := 0
	for i, r := range runs {
		fmt.Printf("  %-4d  %-20d  %-8d  %-10d  %-7d  %d\n", i+1, r.Seed, r.Distance, r.Deliveries, r.Ticks, r.Skipped)
		skipped += r.Skipped
	}

	fmt.Println()
	fmt.Printf("Best distance: %d  |  Average: %.1f  |  Deliveries: %d  |  Skipped spawns: %d\n",
		st.BestDistance, st.AvgDistance, st.TotalDeliveries, skipped)
	return nil
}
