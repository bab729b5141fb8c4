package cli

import (
	"github.com/spf13/cobra"

	"inkpress/pkg/banner"
	"inkpress/pkg/shutdown"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the background workers (cache retention, metrics) until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		banner.Print(a.Config, rootCmd.Version)

		ctx, cancel := shutdown.SetupSignalHandler(cmd.Context())
		defer cancel()

		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
