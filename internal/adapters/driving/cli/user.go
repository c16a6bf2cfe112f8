package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage the user directory",
	Long: `Add, list and suspend users. Active users are synced as documents;
suspended users are removed from the documents table on the next sync.`,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE:  runUserList,
}

var userAddCmd = &cobra.Command{
	Use:   "add [id] [username]",
	Short: "Add or update a user",
	Args:  cobra.ExactArgs(2),
	RunE:  runUserAdd,
}

var userSuspendCmd = &cobra.Command{
	Use:   "suspend [id]",
	Short: "Suspend a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserSuspend,
}

// Flags for the user commands.
var (
	userSuspended bool
	userFirstName string
	userLastName  string
	userEmail     string
)

func init() {
	userListCmd.Flags().BoolVar(&userSuspended, "suspended", false, "List suspended users instead")

	userAddCmd.Flags().StringVar(&userFirstName, "first", "", "First name")
	userAddCmd.Flags().StringVar(&userLastName, "last", "", "Last name")
	userAddCmd.Flags().StringVar(&userEmail, "email", "", "Email address")

	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userSuspendCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserList(cmd *cobra.Command, _ []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}

	users, err := userService.List(cmd.Context(), userSuspended)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		cmd.Println("No users found.")
		return nil
	}

	for i := range users {
		cmd.Printf("  %s\t%s\t%s\n", users[i].ID, users[i].Username, users[i].DisplayName())
	}
	cmd.Println()
	cmd.Printf("Total: %d users\n", len(users))
	return nil
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}

	user := domain.DirectoryUser{
		ID:        args[0],
		Username:  args[1],
		FirstName: userFirstName,
		LastName:  userLastName,
		Email:     userEmail,
	}
	if err := userService.Save(cmd.Context(), user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	cmd.Printf("User %s saved.\n", user.ID)
	return nil
}

func runUserSuspend(cmd *cobra.Command, args []string) error {
	if userService == nil {
		return errors.New("user service not configured")
	}

	if err := userService.Suspend(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to suspend user: %w", err)
	}

	cmd.Printf("User %s suspended.\n", args[0])
	return nil
}
