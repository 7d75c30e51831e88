package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/latte/cmd/latte"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := latte.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
