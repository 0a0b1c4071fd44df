package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the terminal",
	Long:  `Switch to the specified profile and immediately start the terminal.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profileName := args[0]

		if err := cfg.SetActiveProfile(profileName); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}

		// Save config with new active profile
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		if err := runTerminal(); err != nil {
			log.Fatalf("%v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
