// Package main is the trispace command itself.
package main

import (
	"log"
	"os"

	"go.viam.com/trispace/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	app.Reader = os.Stdin
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
