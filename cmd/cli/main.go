package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	authToken string
	userID    string
	apiURL    string = "http://localhost:8080"
)

var rootCmd = &cobra.Command{
	Use:   "fitcheck",
	Short: "Fitcheck CLI - Browse the feed and interact with outfit posts",
	Long: `Fitcheck CLI provides command-line access to the Fitcheck backend.
Browse the outfit feed, like and save posts, and inspect profiles.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if authToken == "" {
			authToken = os.Getenv("FITCHECK_TOKEN")
		}
		if userID == "" {
			userID = os.Getenv("FITCHECK_USER")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "Session token (defaults to FITCHECK_TOKEN env var)")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "Acting user ID (defaults to FITCHECK_USER env var)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", apiURL, "API server URL")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
