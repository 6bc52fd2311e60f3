package main

import (
	"os"

	"github.com/banksh/banksh/internal/commands"
)

func main() {
	rootCmd, status := commands.NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(*status)
}
