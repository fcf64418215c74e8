package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of eqbridge",
		Long:  `All software has versions. This is eqbridge's.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("eqbridge version %s\n", rootCmd.Version)
		},
	}
}
