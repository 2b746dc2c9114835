package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/waterrun/internal/config"
	"github.com/vovakirdan/waterrun/internal/games/waterrun"
)

var difficultiesCmd = &cobra.Command{
	Use:   "difficulties",
	Short: "List the difficulty tiers",
	Long: `Shows every difficulty tier from the active config with its scroll speed,
gravity, and the jump it produces: airtime in ticks, peak height in pixels,
and the ground covered while airborne.`,
	Args: cobra.NoArgs,
	RunE: runDifficulties,
}

func runDifficulties(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	fmt.Println("Difficulty tiers:")
	fmt.Println()
	fmt.Printf("  %-7s  %-6s  %-7s  %-7s  %-6s  %s\n", "Tier", "Speed", "Gravity", "Airtime", "Peak", "Jump length")
	fmt.Printf("  %-7s  %-6s  %-7s  %-7s  %-6s  %s\n", "----", "-----", "-------", "-------", "----", "-----------")

	for _, d := range config.Difficulties() {
		tier, err := cfg.Tier(d)
		if err != nil {
			return err
		}
		ticks, peak := waterrun.Airtime(cfg.Player.JumpImpulse, tier.Gravity)
		fmt.Printf("  %-7s  %-6.1f  %-7.2f  %-7d  %-6.0f  %.0f\n",
			d.Label(), tier.ScrollSpeed, tier.Gravity, ticks, peak, float64(ticks)*tier.ScrollSpeed)
	}

	fmt.Println()
	fmt.Println("Run 'waterrun play' and pick one on the start screen.")
	return nil
}
