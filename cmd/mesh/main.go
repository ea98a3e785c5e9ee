package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "mesh",
		Short: "MESH tick resolver server",
		Long:  "MESH runs an authoritative, tick-based multiplayer space simulation server.",
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newReplayCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// requireEnv reads a required environment variable and exits if it is
// not set, so the process never starts half-configured.
func requireEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Fprintf(os.Stderr, "FATAL: required environment variable %s is not set\n", key)
		os.Exit(1)
	}
	return val
}

func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
