// Package main is the axispredict command itself.
package main

import (
	"log"
	"os"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
