package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/requery"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of requery",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("requery version %s\n", strings.TrimSpace(requery.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
