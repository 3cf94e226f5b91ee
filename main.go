package main

import (
	"travel-ties/cmd"

	_ "go.uber.org/automaxprocs"
)

func main() {
	cmd.Start()
}
