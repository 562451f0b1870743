package main

import (
	"context"
	"log"
	"os"

	"tableflip.dev/tracker/pkg/commands"
)

func main() {
	if err := commands.Execute(context.Background(), commands.New(), os.Args[1:]); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
