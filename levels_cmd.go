package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/mitchbros/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the available levels",
	Long:  `Shows every level id the loader can find, built-in and in --level-dir, with its name and successor.`,
	RunE:  runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	loader := levels.NewFSLoader(cfg.LevelDir)
	ids, err := loader.List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	maxIDLen := 2
	for _, id := range ids {
		maxIDLen = max(maxIDLen, len(id))
	}

	fmt.Printf("  %-*s  %-6s  %-7s  %s\n", maxIDLen, "ID", "Pizzas", "Next", "Name")
	fmt.Printf("  %-*s  %-6s  %-7s  %s\n", maxIDLen, "--", "------", "----", "----")
	for _, id := range ids {
		tmpl, err := loader.Load(cmd.Context(), id)
		if err != nil {
			fmt.Printf("  %-*s  error: %v\n", maxIDLen, id, err)
			continue
		}
		next := tmpl.NextLevel
		if next == "" {
			next = "-"
		}
		fmt.Printf("  %-*s  %-6d  %-7s  %s\n", maxIDLen, id, len(tmpl.Pizzas), next, tmpl.Name)
	}
	return nil
}
