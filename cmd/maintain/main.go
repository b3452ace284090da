// Command maintain runs housekeeping tasks against the portfolio database:
// schema initialization, counters, retention cleanup and listing contacts.
package main

import (
	"os"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/logging"
)

func main() {
	cfg, err := config.Load(".env", "../.env")
	if err != nil {
		logging.Setup("info")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
