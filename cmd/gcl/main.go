package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gcl/internal/batch"
)

func main() {
	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Printf("Interrupted, stopping after the current repository")
		cancel()
	}()

	a := newApp(ctx, os.Stdout, os.Stderr)
	root := newRootCmd(a)
	err := root.ExecuteContext(ctx)
	a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var usage *batch.UsageError
		if errors.As(err, &usage) {
			fmt.Fprintln(os.Stderr, "\nAvailable repositories:")
			for _, name := range a.registry.Names() {
				fmt.Fprintf(os.Stderr, "  %s\n", name)
			}
		} else if isCommandLineError(err) {
			fmt.Fprintln(os.Stderr)
			_ = root.Help()
		}
		os.Exit(1)
	}
}
