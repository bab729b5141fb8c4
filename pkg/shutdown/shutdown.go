// Package shutdown installs the signal handling used by long-running
// modes of the client.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"inkpress/pkg/logger"
)

// SetupSignalHandler installs handlers for SIGINT and SIGTERM and
// returns a cancellable context. The context is cancelled when either
// signal arrives; use the cancel function to stop watching early.
func SetupSignalHandler(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case s := <-sigc:
			logger.Info("signal_received", "signal", s.String(), "msg", "shutdown requested")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigc)
	}()

	return ctx, cancel
}
