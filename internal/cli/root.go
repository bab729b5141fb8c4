// Package cli implements the inkpress command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"inkpress/internal/app"
	"inkpress/pkg/config"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfgPath string
	runtime *app.App
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "inkpress",
	Short: "Command-line client for the inkpress article service",
	Long: `inkpress talks to an inkpress CMS deployment: browse published
articles, manage your drafts, and administer content depending on
your role.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree and tears the runtime down afterwards.
// Called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if runtime != nil {
		_ = runtime.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// getApp lazily assembles the runtime so plain invocations like
// --help never touch the local store.
func getApp(cmd *cobra.Command) (*app.App, error) {
	if runtime != nil {
		return runtime, nil
	}
	path := cfgPath
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".inkpress", "config.yaml")
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	a, err := app.New(*cfg)
	if err != nil {
		return nil, err
	}
	if err := a.StartBackground(cmd.Context()); err != nil {
		_ = a.Close()
		return nil, err
	}
	runtime = a
	return runtime, nil
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file path (default is $HOME/.inkpress/config.yaml)")
}
