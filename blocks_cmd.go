package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/mitchbros/tiles"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Print the tile palette",
	Long:  `Lists every block code usable in a level's blocks rows with its sprite and collision class.`,
	Run:   runBlocks,
}

func runBlocks(cmd *cobra.Command, args []string) {
	fmt.Printf("  %-4s  %-14s  %s\n", "Code", "Sprite", "Class")
	fmt.Printf("  %-4s  %-14s  %s\n", "----", "------", "-----")
	for _, b := range tiles.Palette() {
		class := "open"
		switch {
		case tiles.IsSolid(b):
			class = "solid"
		case tiles.IsSemiSolid(b):
			class = "semi-solid"
		}
		fmt.Printf("  %-4q  %-14s  %s\n", b.Code(), b.Name(), class)
	}
}
