// Command simulation drives a running evaluator API from the terminal:
// an interactive pitch conversation, the leaderboard and a live event feed.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	natsURL string
)

var rootCmd = &cobra.Command{
	Use:   "simulation",
	Short: "Terminal client for the pitch evaluator API",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "api", "http://localhost:3000/api", "API base URL")
	rootCmd.PersistentFlags().StringVar(&natsURL, "nats", "nats://localhost:4222", "NATS URL for the watch command")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
