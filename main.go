package main

import (
	"os"

	"github.com/dreamboard/dreamboard/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
