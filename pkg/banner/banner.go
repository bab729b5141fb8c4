// Package banner prints the startup header for long-running modes.
package banner

import (
	"fmt"

	"inkpress/pkg/config"
)

const banner = `
██╗███╗   ██╗██╗  ██╗██████╗ ██████╗ ███████╗███████╗███████╗
██║████╗  ██║██║ ██╔╝██╔══██╗██╔══██╗██╔════╝██╔════╝██╔════╝
██║██╔██╗ ██║█████╔╝ ██████╔╝██████╔╝█████╗  ███████╗███████╗
██║██║╚██╗██║██╔═██╗ ██╔═══╝ ██╔══██╗██╔══╝  ╚════██║╚════██║
██║██║ ╚████║██║  ██╗██║     ██║  ██║███████╗███████║███████║
╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝╚═╝     ╚═╝  ╚═╝╚══════╝╚══════╝╚══════╝
`

// Print shows the runtime banner for daemon mode.
func Print(cfg config.Config, version string) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("API:        %s\n", cfg.API.BaseURL)
	fmt.Printf("Local db:   %s\n", cfg.Storage.DBPath)
	if version != "" {
		fmt.Printf("Version:    %s\n", version)
	}
	if cfg.Metrics.Addr != "" {
		fmt.Printf("Metrics:    http://%s/metrics\n", cfg.Metrics.Addr)
	}
	if cfg.Retention.Enabled {
		fmt.Printf("Retention:  %s (max age %s)\n", cfg.Retention.Cron, cfg.Retention.MaxAgeDuration())
	} else {
		fmt.Println("Retention:  disabled")
	}
	fmt.Println("===============================================================")
}
