package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nunajera/portfolio-backend/internal/export"
)

var (
	format    string
	outputDir string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved conversation to a file",
	Long: `Export the conversation kept by 'portfolio chat' (txt, json, yaml, md, html).

The file is named portfolio-chat-<date>-<time>.<ext> and written to --dir.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadClientConfig()
		if err != nil {
			return err
		}
		history, closeStore, err := openHistory(cfg.DataDir, zap.NewNop())
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		path, err := export.ToFile(outputDir, format, history.Load(), time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&format, "format", "f", "txt", "Export format: txt, json, yaml, md, html")
	exportCmd.Flags().StringVarP(&outputDir, "dir", "d", ".", "Output directory")
	exportCmd.Flags().StringVar(&clientConfigPath, "config", "", "Client config file (default ~/.config/portfolio-chat/config.toml)")
	rootCmd.AddCommand(exportCmd)
}
