package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"bda-svc/config"
	"bda-svc/internal/domain/port"
	"bda-svc/internal/infrastructure/storage"
)

func newRetrieveCommand(logger *slog.Logger) *cobra.Command {
	var ids []string
	var image string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "retrieve",
		Short: "Retrieve prior export artifacts without re-running inference",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if outputPath != "" {
				cfg.Output = outputPath
			}

			store := storage.NewFSStore(cfg.Output, logger)
			records, err := store.RetrieveMany(cmd.Context(), port.ArtifactFilter{
				IDs:   ids,
				Image: image,
			})
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("no artifacts matched")
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(records)
		},
	}

	cmd.Flags().StringSliceVar(&ids, "id", nil, "artifact identifier (repeatable)")
	cmd.Flags().StringVar(&image, "image", "", "select all artifacts for a source image")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "artifact folder to read from")
	return cmd
}
