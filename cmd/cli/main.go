package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/smarthealthquote/smarthealthquote/cmd/cli/chat"
	"github.com/smarthealthquote/smarthealthquote/internal/errors"
	"github.com/spf13/cobra"
)

func init() {
	// The .env file is optional outside the repository checkout.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(chat.Group)
	rootCmd.AddCommand(chat.Chat)
}

var rootCmd = &cobra.Command{
	Use:  "smarthealthquote-cli",
	Long: `Command line utilities for SmartHealthQuote https://github.com/smarthealthquote/smarthealthquote`,
	Run: func(cmd *cobra.Command, args []string) {
		// Do Stuff Here
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
