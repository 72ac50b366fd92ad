package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"velar/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "velar",
	Short: "Velar class-lowering toolchain",
	Long:  `Velar lowers typed class hierarchies into IR member tables`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
