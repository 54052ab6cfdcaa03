package main

import (
	"os"

	"github.com/wonny/bunkerwatch/backend/cmd/bunker/commands"
)

// main is the entry point for the bunkerwatch CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/bunker [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
