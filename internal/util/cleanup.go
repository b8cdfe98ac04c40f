package util

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// SetupInterruptHandler cancels the crawl on the first SIGINT/SIGTERM so it
// can stop cleanly and still print its summary. A second signal exits
// immediately.
func SetupInterruptHandler(cancel context.CancelFunc) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		fmt.Fprintln(os.Stderr, "\nInterrupt received. Finishing up...")
		cancel()

		<-sig
		fmt.Fprintln(os.Stderr, "\nExiting due to repeated interrupt.")
		os.Exit(1)
	}()
}
