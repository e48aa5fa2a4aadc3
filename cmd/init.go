package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/blogrender/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize blogrender configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure blogrender for your site and generates a .blogrender.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
