package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "Daybook - raw-socket diary server",
	Long: `Daybook is a single-page diary application served over a hand-rolled
HTTP/1.1 layer on raw TCP sockets.

The server reads each request directly off the socket, frames it by
Content-Length, and closes the connection after every response. Diary
entries are stored in SQLite (or in memory) and protected by session
tokens issued on login.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
