package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var pilotsCmd = &cobra.Command{
	Use:   "pilots",
	Short: "List available pilots",
	Long:  `Shows every pilot that can drive a game with --pilot.`,
	Run:   runPilots,
}

func runPilots(cmd *cobra.Command, args []string) {
	pilots := registry.List()

	if len(pilots) == 0 {
		fmt.Println("No pilots available.")
		return
	}

	fmt.Println("Available pilots:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range pilots {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Title", "Description")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "-----", "-----------")

	for _, p := range pilots {
		fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, p.ID, p.Title, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'flappy play --pilot <id>' or 'flappy sim --pilot <id>'.")
}
