package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "gameshelf",
		Short: "CLI tool for the gameshelf catalog API",
		Long: `gameshelf is a CLI tool for interacting with the gameshelf JSON API.

It handles account registration and login, stores the issued token pair
locally, and keeps it fresh when the server rotates it.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.LoadTokens(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.Tokens, cfg.SaveTokens)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: GAMESHELF_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokensFile, "tokens-file", cfg.TokensFile, "Tokens file path (env: GAMESHELF_TOKENS_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
