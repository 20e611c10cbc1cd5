package main

import (
	"log"

	"github.com/sensorsdata/sensorsgen/cmd"
)

func main() {
	log.Default().SetFlags(0)
	cmd.Execute()
}
