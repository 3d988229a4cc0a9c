package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and store state",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		fmt.Printf("planforge %s\n\n", a.cfg.Version)
		fmt.Printf("Provider:    %s (%s)\n", a.cfg.LLM.Provider, a.cfg.LLM.Model)
		if a.cfg.LLM.APIKey != "" {
			fmt.Println("API key:     configured")
		} else {
			fmt.Println("API key:     missing")
		}
		fmt.Printf("Timeout:     %s\n", a.callTimeout())
		fmt.Printf("Sections:    %d required\n", len(a.cfg.Plan.Sections))
		fmt.Printf("Store:       %s\n", a.store.Path())

		companies := a.store.ListCompanies()
		fmt.Printf("Plans:       %d stored\n", len(companies))

		if _, err := os.Stat(a.store.Path()); os.IsNotExist(err) {
			fmt.Println("\nStore file not created yet; it appears on first save.")
		}
		return nil
	},
}
