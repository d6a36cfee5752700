// Package main provides the entry point for the TrustProof verification agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trustproof_agent",
	Short: "TrustProof review verification agent",
	Long:  "TrustProof runs customer reviews through a staged verification pipeline (intake, purchase verification, text authenticity, consistency, media authenticity, trust scoring) against the hosted verification service, via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
