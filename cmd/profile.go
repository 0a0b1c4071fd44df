package cmd

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/nile-cgpa/terminal/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage backend profiles",
	Long:  `Manage profiles pointing at different CGPA backends.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range cfg.ProfileNames() {
			profile := cfg.Profiles[name]
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			fmt.Printf("    Server URL: %s\n", displayURL(profile.ServerURL))
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profileName := args[0]
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		fmt.Printf("Server URL: %s\n", displayURL(profile.ServerURL))
		if profileName == cfg.ActiveProfile {
			fmt.Printf("Effective URL: %s\n", displayURL(resolveServerURL()))
		}
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			profileName string
			err         error
		)
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label: "Profile name",
			}
			profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		urlPrompt := promptui.Prompt{
			Label:    "Server URL",
			Default:  config.DefaultServerURL,
			Validate: validateServerURL,
		}
		serverURL, err := urlPrompt.Run()
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.Profiles[profileName] = config.Profile{ServerURL: strings.TrimSpace(serverURL)}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profileName := selectProfile(args, "Select profile to edit", false)

		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		urlPrompt := promptui.Prompt{
			Label:    "Server URL",
			Default:  profile.ServerURL,
			Validate: validateServerURL,
		}
		newURL, err := urlPrompt.Run()
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		profile.ServerURL = strings.TrimSpace(newURL)

		cfg.Profiles[profileName] = profile

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profileName := selectProfile(args, "Select profile to delete", false)

		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'? (y/N)", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		if err := cfg.DeleteProfile(profileName); err != nil {
			log.Fatalf("Failed to delete profile: %v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profileName := selectProfile(args, "Select profile to switch to", true)
		if profileName == "" {
			fmt.Println("No other profiles available to switch to")
			return
		}

		if err := cfg.SetActiveProfile(profileName); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

// selectProfile returns args[0], or lets the user pick a profile. It returns
// "" when there is nothing to pick from.
func selectProfile(args []string, label string, skipActive bool) string {
	if len(args) > 0 {
		return args[0]
	}

	var names []string
	for _, name := range cfg.ProfileNames() {
		if skipActive && name == cfg.ActiveProfile {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		if skipActive {
			return ""
		}
		log.Fatalf("No profiles available")
	}

	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

func validateServerURL(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	u, err := url.ParseRequestURI(input)
	if err != nil || u.Host == "" {
		return errors.New("enter an absolute URL such as http://localhost:8080")
	}
	return nil
}

func displayURL(u string) string {
	if u == "" {
		return "(not set)"
	}
	return u
}

func init() {
	// Add subcommands to profile
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
