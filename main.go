package main

import (
	"os"

	"github.com/clearlane-advisory/clearlane-web/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
