package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sitesync/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in the configuration file.

Every key can also be overridden by an environment variable, e.g.
SITESYNC_SITES_SECRET overrides sites.secret.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a setting",
	Long: `Validate and store a single setting. Lists are comma separated.

Examples:
  sitesync settings set sites.endpoints https://a.example.org/search,https://b.example.org/search
  sitesync settings set scheduler.schedule "@every 15m"`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsSecretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Set the site secret without echoing it",
	RunE:  runSettingsSecret,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the settings keys",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, k := range services.SettingKeys() {
			cmd.Println(k)
		}
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsSecretCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if settings == nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("File: %s\n", settingsService.Path())
	cmd.Println()

	cmd.Println("[Sites]")
	if settings.Sites.Secret != "" {
		cmd.Printf("  Secret: %s\n", maskSecret(settings.Sites.Secret))
	} else {
		cmd.Println("  Secret: (not set)")
	}
	if len(settings.Sites.Endpoints) == 0 {
		cmd.Println("  Endpoints: (none)")
	} else {
		cmd.Println("  Endpoints:")
		for _, e := range settings.Sites.Endpoints {
			cmd.Printf("    - %s\n", e)
		}
	}
	cmd.Printf("  Timeout: %s\n", settings.Sites.Timeout)
	cmd.Printf("  Concurrency: %d\n", settings.Sites.Concurrency)
	cmd.Printf("  Requests/second: %g\n", settings.Sites.RequestsPerSecond)
	cmd.Println()

	cmd.Println("[Quick Links]")
	if settings.QuickLinks.Path != "" {
		cmd.Printf("  Path: %s\n", settings.QuickLinks.Path)
	} else {
		cmd.Println("  Path: (disabled)")
	}
	cmd.Println()

	cmd.Println("[Users]")
	cmd.Printf("  Enabled: %t\n", settings.Users.Enabled)
	if settings.Users.ProfileURL != "" {
		cmd.Printf("  Profile URL: %s\n", settings.Users.ProfileURL)
	}
	cmd.Println()

	cmd.Println("[Scheduler]")
	cmd.Printf("  Enabled: %t\n", settings.Scheduler.Enabled)
	cmd.Printf("  Schedule: %s\n", settings.Scheduler.Schedule)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Printf("  Log level: %s\n", settings.LogLevel)

	if err != nil {
		cmd.Println()
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s updated.\n", args[0])
	return nil
}

func runSettingsSecret(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("Site secret: ")
	secret := readSecret()
	cmd.Println()
	if secret == "" {
		return errors.New("secret is empty")
	}

	if err := settingsService.Set(services.KeySiteSecret, secret); err != nil {
		return err
	}
	cmd.Println("Site secret updated.")
	return nil
}

// readSecret reads a line without echo when stdin is a terminal.
func readSecret() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskSecret(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
