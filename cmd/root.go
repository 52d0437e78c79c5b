package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nunajera/portfolio-backend/internal/portfolio"
)

var (
	verbose       bool
	envFile       string
	portfolioPath string
	version       string = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio chatbot backend and terminal chat widget",
	Long: `Backend for a personal portfolio site and a terminal client for it.

  portfolio serve              # run the /api/chat and /api/contact server
  portfolio chat               # open the chat widget in the terminal
  portfolio export --format md # export the saved conversation
  portfolio context            # print the prompt context built from the portfolio`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file (default .env)")
	rootCmd.PersistentFlags().StringVar(&portfolioPath, "portfolio", "", "Portfolio YAML file (default: built-in data or $PORTFOLIO_DATA)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadPortfolio reads path, or returns the built-in portfolio when path
// is empty.
func loadPortfolio(path string) (*portfolio.Portfolio, error) {
	if path == "" {
		return portfolio.Default(), nil
	}
	p, err := portfolio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	return p, nil
}
