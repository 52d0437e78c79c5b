package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the portfolio context sent with every chat prompt",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := loadPortfolio(portfolioPath)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), p.Context())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contextCmd)
}
