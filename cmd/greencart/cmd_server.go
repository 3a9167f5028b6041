package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/siddharthaBojanki/greenCart/app/routes"
	"github.com/siddharthaBojanki/greenCart/config"
	"github.com/siddharthaBojanki/greenCart/internal/server"
	"github.com/siddharthaBojanki/greenCart/pkg/database"
	"github.com/siddharthaBojanki/greenCart/pkg/router"
)

// greencart serve — start the HTTP and gRPC listeners.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// greencart route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		// Controllers resolve collections at construction, so the listing
		// needs a live store connection too.
		if err := database.Connect(cmd.Context()); err != nil {
			return fmt.Errorf("store connection failed: %w", err)
		}
		defer database.Disconnect(cmd.Context())

		r := router.New()
		if err := routes.RegisterAPI(r); err != nil {
			return err
		}

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
