package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/lukehollenback/coinbase-api/cli"
)

func main() {
	//
	// Cancel any in-flight request if the operating system asks us to shut down.
	//
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	app := &cli.App{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	code := app.Run(ctx, os.Args[1:])

	stop()
	os.Exit(code)
}
