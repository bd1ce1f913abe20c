package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/version"
)

var verbose bool

// logger is shared by all subcommands. Configured in the root
// PersistentPreRun once flags are parsed.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

var rootCmd = &cobra.Command{
	Use:   "gorcd",
	Short: "Reinforced Concrete Beam Designer",
	Long: `gorcd - Go Reinforced Concrete Designer

A CLI tool for the design of reinforced concrete beams
based on the National Structural Code of the Philippines (NSCP).

This tool helps structural engineers perform:
  - Flexural design (singly and doubly reinforced beams)
  - Bar selection and spacing arrangement across layers
  - Seismic detailing for special moment frames
  - Shear design and stirrup spacing
  - Torsion design and side-face reinforcement
  - Batch design of whole floors from a beam-data file

All calculations follow NSCP 2015 (Volume 1) provisions.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gorcd v%-49s║\n", version.Version)
		fmt.Println("  ║   Go Reinforced Concrete Designer                         ║")
		fmt.Printf("  ║   %s ©  %s                             ║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the design of reinforced concrete beams")
		fmt.Println("  based on the National Structural Code of the Philippines (NSCP).")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Flexural design with automatic bar selection and layering")
		fmt.Println("    • Doubly reinforced fallback when a section is over capacity")
		fmt.Println("    • Shear design with stirrup spacing limits")
		fmt.Println("    • Torsion check with side-face reinforcement for deep beams")
		fmt.Println("    • Batch design across floors, groups and beams")
		fmt.Println()
		fmt.Println("  Use 'gorcd --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
