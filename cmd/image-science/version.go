package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCommand prints version information
func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("image-science %s (revision %s)\n", Version, Revision)
			fmt.Printf("  Build time: %s\n", BuildTime)
		},
	}
}
