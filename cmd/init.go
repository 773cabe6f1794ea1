package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simplybusiness/kiln-release/internal/config"
	"github.com/simplybusiness/kiln-release/internal/paths"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default " + paths.ConfigFile,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	path := paths.ConfigPath(repoRoot, cfgFile)
	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
