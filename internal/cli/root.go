// Package cli defines the command surface: analyze (the default mode)
// runs the assessment pipeline over an image or folder, retrieve loads
// prior export artifacts without re-running inference.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the bda-svc command tree.
func NewRootCommand(logger *slog.Logger) *cobra.Command {
	if logger == nil {
		logger = slog.Default()
	}

	root := &cobra.Command{
		Use:           "bda-svc",
		Short:         "Automated battle damage assessment powered by machine learning",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAnalyzeCommand(logger))
	root.AddCommand(newRetrieveCommand(logger))
	return root
}
