package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"bda-svc/config"
	app "bda-svc/internal/application"
	"bda-svc/internal/container"
	"bda-svc/internal/doctrine"
	"bda-svc/internal/infrastructure/storage"
	"bda-svc/internal/infrastructure/vision"
	"bda-svc/internal/infrastructure/vlm"
	"bda-svc/internal/inputs"
)

func newAnalyzeCommand(logger *slog.Logger) *cobra.Command {
	var inputPath string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Run BDA analysis over an image file or folder",
		Long: "Runs detection and VLM assessment over the selected imagery. The input\n" +
			"path comes from the positional argument or --input flag, then the\n" +
			inputs.EnvInput + " environment variable, then " + inputs.DefaultInputPath + ".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && inputPath == "" {
				inputPath = args[0]
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if outputPath != "" {
				cfg.Output = outputPath
			}

			// Fail fast: doctrine and config problems abort before any image.
			catalog, err := doctrine.Load(cfg.Doctrine)
			if err != nil {
				return err
			}

			root, err := inputs.ResolvePath(inputPath)
			if err != nil {
				return err
			}
			logger.Info("Input source selected", "path", root)

			paths, err := inputs.Discover(root, logger)
			if err != nil {
				return err
			}

			detector, err := vision.NewDNNDetector(vision.Options{
				ModelPath:     cfg.Detector.ModelPath,
				ModelName:     cfg.Detector.ModelName,
				Labels:        cfg.Detector.Labels,
				InputSize:     cfg.Detector.InputSize,
				ConfThreshold: cfg.Detector.ConfThreshold,
				NMSThreshold:  cfg.Detector.NMSThreshold,
			})
			if err != nil {
				return fmt.Errorf("initialize detector: %w", err)
			}
			defer detector.Close()

			assessor := vlm.NewClient(cfg.VLM.BaseURL, cfg.VLM.Model, cfg.VLM.SystemPrompt,
				vlm.WithLogger(logger))
			store := storage.NewFSStore(cfg.Output, logger)

			c := container.New(catalog, detector, assessor, store, logger)

			summary, err := c.Pipeline.Run(cmd.Context(), paths)
			printSummary(cmd, summary)
			return err
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to input image file or folder")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "path to output folder")
	return cmd
}

// printSummary reports the run outcome: fully assessed, partially
// assessed, and failed images, plus any export failures.
func printSummary(cmd *cobra.Command, summary *app.Summary) {
	if summary == nil {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nProcessed %d image(s): %d complete, %d partial, %d failed\n",
		len(summary.Outcomes), summary.Complete, summary.Partial, summary.Failed)
	for _, o := range summary.Outcomes {
		switch {
		case o.ExportErr != nil:
			fmt.Fprintf(out, "  %-16s %s (export failed: %v)\n", o.Status, o.Image, o.ExportErr)
		case o.ArtifactID != "":
			fmt.Fprintf(out, "  %-16s %s -> %s\n", o.Status, o.Image, o.ArtifactID)
		default:
			fmt.Fprintf(out, "  %-16s %s\n", o.Status, o.Image)
		}
	}
	if summary.ExportFailures > 0 {
		fmt.Fprintf(out, "%d record(s) could not be exported; see logs for recovery\n", summary.ExportFailures)
	}
}
