package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/docdeck-io/docdeck-cli/internal/core/domain"
	"github.com/docdeck-io/docdeck-cli/internal/core/ports/driven"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to a SharePoint backend",
	Long: `Authenticate against a SharePoint backend and store the session.

Prompts for the password without echo. The blob storage backend does
not require authentication.

Examples:
  docdeck login --username alice@example.com`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE:  runLogout,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend health and session status",
	RunE:  runStatus,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username to authenticate with")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if gatewayClient == nil {
		return errors.New("document service not configured")
	}

	username := loginUsername
	if username == "" {
		cmd.Print("Username: ")
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &username); err != nil {
			return fmt.Errorf("read username: %w", err)
		}
	}

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}

	res, err := gatewayClient.Login(cmd.Context(), username, password)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	if !res.Success {
		if res.Error != "" {
			return fmt.Errorf("%w: %s", domain.ErrAuthFailed, res.Error)
		}
		return domain.ErrAuthFailed
	}

	if configStore != nil {
		if err := configStore.Set(driven.KeyUsername, username); err != nil {
			return fmt.Errorf("store session: %w", err)
		}
	}

	user := res.User
	if user == "" {
		user = username
	}
	cmd.Printf("Logged in as %s.\n", user)
	return nil
}

// readPassword reads the password without echo when stdin is a
// terminal, otherwise reads a line (piped input, tests).
func readPassword(cmd *cobra.Command) (string, error) {
	cmd.Print("Password: ")
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	var password string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &password); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(password), nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if gatewayClient == nil {
		return errors.New("document service not configured")
	}

	if err := gatewayClient.Logout(cmd.Context()); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	if configStore != nil {
		if err := configStore.Delete(driven.KeyToken); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		if err := configStore.Delete(driven.KeyUsername); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}

	cmd.Println("Logged out.")
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if gatewayClient == nil {
		return errors.New("document service not configured")
	}

	if err := gatewayClient.Health(cmd.Context()); err != nil {
		cmd.Println("Backend:  unreachable")
		return fmt.Errorf("health check failed: %w", err)
	}
	cmd.Println("Backend:  healthy")

	if configStore != nil {
		if user := configStore.GetString(driven.KeyUsername); user != "" {
			cmd.Printf("Session:  logged in as %s\n", user)
		} else {
			cmd.Println("Session:  not logged in")
		}
		if folder := configStore.GetString(driven.KeyFolder); folder != "" {
			cmd.Printf("Folder:   %s\n", folder)
		}
	}
	return nil
}
