// Command greencart is the storefront CLI: it serves the API, seeds the
// catalogue, runs queue workers and lists routes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import seeders so their init() funcs register themselves.
	_ "github.com/siddharthaBojanki/greenCart/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "greencart",
	Short: "GreenCart — grocery storefront API",
	Long:  "GreenCart serves a small e-commerce storefront: seller and user auth, product catalogue, and per-user cart persistence.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(queueWorkCmd)
}
