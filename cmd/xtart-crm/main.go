package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xtart-crm/internal/app"
)

func main() {
	root := &cobra.Command{
		Use:   "xtart-crm",
		Short: "Desktop client for the XTART CRM REST backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.NewApplication()
			if err != nil {
				return err
			}
			return application.Run()
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s\n", app.AppName, app.AppVersion)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
