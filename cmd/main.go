package main

import (
	"log"

	"github.com/chenBenjamin97/player-tracker/pkg/cli"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cli.Execute()
}
