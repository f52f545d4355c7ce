package main

import (
	"log/slog"
	"os"

	"github.com/riskstack/riskstack/cmd/riskstack-cli/commands"
	"github.com/riskstack/riskstack/internal/shared"
)

func Execute() {
	err := commands.GetRootCmd().Execute()
	if err != nil {
		slog.Error("Error executing command", "err", err)
		os.Exit(1)
	}
}

func init() {
	commands.GetRootCmd().AddCommand(commands.NewImportControlsCommand())
	commands.GetRootCmd().AddCommand(commands.NewSeedCommand())
	commands.GetRootCmd().AddCommand(commands.NewWaitForDBCommand())
}

func main() {
	shared.InitLogger()
	Execute()
}
