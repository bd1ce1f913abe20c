package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gorcd",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gorcd v%s\n", version.Version)
		fmt.Println("Reinforced Concrete Beam Designer")
		fmt.Println("Based on NSCP 2015 (National Structural Code of the Philippines)")
		if version.GitCommit != "unknown" {
			fmt.Printf("commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
