package main

import (
	"context"
	"os"

	"github.com/marcos-nsantos/imgstore/internal/adapter/cli"
)

func main() {
	if err := cli.Execute(context.Background(), os.Args[1:], os.Stdout); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
