package main

import (
	"context"
	"os"

	"github.com/ardnew/elconf/cli"
	"github.com/ardnew/elconf/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error("run failed", log.Err(err)) // expanded via LogValue
		os.Exit(1)
	}
}
