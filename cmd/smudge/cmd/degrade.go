package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/smudge/internal/batch"
	"github.com/MeKo-Tech/smudge/internal/config"
)

// degradeCmd runs the full degradation batch over a clear dataset.
var degradeCmd = &cobra.Command{
	Use:   "degrade",
	Short: "Degrade a clear annotated dataset into OCR training samples",
	Long: `Degrade cycles through the clear images listed in the input annotation
index and produces the configured number of degraded samples. Each sample
goes through the enabled degradation stages with freshly sampled parameters,
its word annotations are carried through every geometric transform, and the
result is scored against the source image. When a Tesseract binary is
available each sample is additionally run through it and scored against the
ground truth text.

The output directory receives an images/ subdirectory with the degraded
PNG files and an annotations.json index describing every sample.

Examples:
  smudge degrade --images clear/ --annotations clear/annotations.json --output degraded/
  smudge degrade --count 1000 --seed 7 --workers 8
  smudge degrade --skip-ocr`,
	SilenceUsage: true,
	RunE:         runDegradeCommand,
}

// configToBatch applies CLI flag overrides onto the loaded configuration.
// Flags win over config file and environment values.
func configToBatch(cfg *config.Config, cmd *cobra.Command) *config.Config {
	if cmd.Flags().Changed("images") {
		cfg.ImagesDir, _ = cmd.Flags().GetString("images")
	}
	if cmd.Flags().Changed("annotations") {
		cfg.Annotations, _ = cmd.Flags().GetString("annotations")
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("count") {
		cfg.Count, _ = cmd.Flags().GetInt("count")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("skip-ocr") {
		skip, _ := cmd.Flags().GetBool("skip-ocr")
		cfg.OCR.Enabled = !skip
	}
	if cmd.Flags().Changed("tesseract-path") {
		cfg.OCR.TesseractPath, _ = cmd.Flags().GetString("tesseract-path")
	}
	return cfg
}

func runDegradeCommand(cmd *cobra.Command, args []string) error {
	cfg := configToBatch(globalConfig, cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := batch.NewRunner(cfg, slog.Default())
	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if summary.Failed > 0 {
		slog.Warn("some jobs failed", "failed", summary.Failed, "jobs", summary.Jobs)
	}
	return nil
}

func init() {
	degradeCmd.Flags().StringP("images", "i", "", "directory containing the clear input images")
	degradeCmd.Flags().StringP("annotations", "a", "", "input annotation index (JSON)")
	degradeCmd.Flags().StringP("output", "o", "", "output directory for degraded samples")
	degradeCmd.Flags().IntP("count", "n", 0, "number of degraded samples to produce")
	degradeCmd.Flags().Int64("seed", 0, "random seed for reproducible runs")
	degradeCmd.Flags().Int("workers", 0, "number of parallel workers (0 = number of CPUs)")
	degradeCmd.Flags().Bool("skip-ocr", false, "skip OCR validation of the degraded samples")
	degradeCmd.Flags().String("tesseract-path", "", "path to the tesseract binary")

	rootCmd.AddCommand(degradeCmd)
}
