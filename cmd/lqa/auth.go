package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ramarlina/lqa-cli/pkg/api"
	"github.com/ramarlina/lqa-cli/pkg/context"
	"github.com/ramarlina/lqa-cli/pkg/models"
	"github.com/ramarlina/lqa-cli/pkg/output"
	"github.com/ramarlina/lqa-cli/pkg/session"
)

var (
	flagUsername      string
	flagPasswordStdin bool
	flagEmail         string
	flagPhone         string
	flagNickname      string
)

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)

	for _, cmd := range []*cobra.Command{loginCmd, registerCmd} {
		cmd.Flags().StringVarP(&flagUsername, "username", "u", "", "Account username")
		cmd.Flags().BoolVar(&flagPasswordStdin, "password-stdin", false, "Read the password from stdin")
	}
	registerCmd.Flags().StringVar(&flagEmail, "email", "", "Email address")
	registerCmd.Flags().StringVar(&flagPhone, "phone", "", "Phone number")
	registerCmd.Flags().StringVar(&flagNickname, "nickname", "", "Display name")
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the legal QA service",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()

		if user := session.GetUser(); user != nil && session.IsAuthenticated() {
			if !confirm(out, fmt.Sprintf("Already logged in as %s. Log in again?", user.DisplayName())) {
				return nil
			}
		}

		username, password, err := promptCredentials()
		if err != nil {
			return err
		}

		env, err := getClient(out).Login(cmd.Context(), &models.LoginRequest{
			Username: username,
			Password: password,
		})
		if err != nil {
			return err
		}
		return startSession(out, env)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()

		username, password, err := promptCredentials()
		if err != nil {
			return err
		}

		env, err := getClient(out).Register(cmd.Context(), &models.RegisterRequest{
			Username: username,
			Password: password,
			Email:    flagEmail,
			Phone:    flagPhone,
			Nickname: flagNickname,
		})
		if err != nil {
			return err
		}
		return startSession(out, env)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()

		if err := session.Clear(); err != nil {
			return err
		}
		// A new login starts a new conversation
		context.Clear()

		if out.IsJSON() {
			return out.Success(map[string]bool{"logged_out": true})
		}
		out.Println("Logged out successfully")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := getOutputPrinter()

		sess, err := session.Load()
		if err != nil {
			if out.IsJSON() {
				return out.Success(map[string]interface{}{
					"authenticated": false,
				})
			}
			out.Println("Not logged in")
			return nil
		}

		if out.IsJSON() {
			return out.Success(map[string]interface{}{
				"authenticated": true,
				"user":          sess.User,
				"expires_at":    sess.ExpiresAt,
			})
		}

		if sess.User != nil {
			out.Printf("Logged in as %s (@%s)\n", sess.User.DisplayName(), sess.User.Username)
			out.Printf("User ID: %d\n", sess.User.ID)
			if sess.User.IsAdmin() {
				out.Println("Role: admin")
			}
		} else {
			out.Println("Logged in")
		}
		if sess.ExpiresAt != nil {
			out.Printf("Session expires: %s\n", sess.ExpiresAt.Format(time.RFC3339))
		}
		out.Printf("Server: %s\n", getClient(out).BaseURL())

		return nil
	},
}

func startSession(out *output.Printer, env *api.Envelope[models.AuthResult]) error {
	if env.Data.Token == "" {
		return fmt.Errorf("server returned no token")
	}

	sess := session.New(&env.Data)
	if err := session.Save(sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	context.Clear()

	if out.IsJSON() {
		return out.Success(map[string]interface{}{
			"user":       sess.User,
			"expires_at": sess.ExpiresAt,
		})
	}

	name := env.Data.User.DisplayName()
	if name == "" {
		name = flagUsername
	}
	out.Printf("Logged in as %s\n", name)
	return nil
}

// promptCredentials fills in the username and password from flags, the
// terminal, or stdin when --password-stdin is set.
func promptCredentials() (string, string, error) {
	username := strings.TrimSpace(flagUsername)
	reader := bufio.NewReader(os.Stdin)
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	if username == "" {
		if !interactive || flagPasswordStdin {
			return "", "", fmt.Errorf("--username is required")
		}
		fmt.Fprint(os.Stderr, "Username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return "", "", fmt.Errorf("username is required")
	}

	var password string
	if flagPasswordStdin || !interactive {
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	} else {
		fmt.Fprint(os.Stderr, "Password: ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		password = string(b)
	}
	if password == "" {
		return "", "", fmt.Errorf("password is required")
	}

	flagUsername = username
	return username, password, nil
}
