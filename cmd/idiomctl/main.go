// Package main is the entry point for idiomctl.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsamuelsen/idiom-catalog/internal/cli"
)

// Version is injected via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := cli.Execute(ctx, Version, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
