package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAuthCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication helpers",
	}

	cmd.AddCommand(newAuthLoginCmd(client))
	cmd.AddCommand(newAuthWhoamiCmd(client))
	cmd.AddCommand(newAuthTokenCmd())
	return cmd
}

func newAuthLoginCmd(client *Client) *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session token to the active profile",
		Example: `  # Prompt for the password
  trackerctl auth login --username alice

  # Non-interactive (password on the command line is visible in shell history)
  trackerctl auth login --username alice --password s3cret`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				pw, err := promptPassword()
				if err != nil {
					return err
				}
				password = pw
			}

			token, err := client.Login(username, password)
			if err != nil {
				return err
			}
			if err := saveTokenToActiveProfile(token); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]string{
					"status": "ok",
					"path":   ConfigPath(),
				})
			}
			_, _ = fmt.Fprintf(os.Stdout, "Logged in as %q. Token saved to %s\n", username, ConfigPath())
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username to log in as")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

// promptPassword reads a password from the terminal with echo disabled.
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal available for password prompt (use --password)")
	}
	_, _ = fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func newAuthWhoamiCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the current session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			me, err := client.Me()
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, me)
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s (%s) role=%s\n", me.Username, me.FullName, me.Role)
			return nil
		},
	}
}

func newAuthTokenCmd() *cobra.Command {
	var (
		username string
		role     string
		secret   string
		expires  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a dev-mode session token and save it to the active profile",
		Long:  "Mint an HS256 session token for development and testing against a server sharing the same secret. The token is saved to the active profile automatically.",
		Example: `  # Mint a PI token with the default dev secret
  trackerctl auth token --username alice --role PI --secret dev-secret-change-me

  # Mint an admin token with custom expiry
  trackerctl auth token --username root --role ADMIN --secret mysecret --expires 48h`,
		RunE: func(_ *cobra.Command, _ []string) error {
			now := time.Now()
			claims := jwt.MapClaims{
				"sub":  username,
				"role": role,
				"iat":  now.Unix(),
				"exp":  now.Add(expires).Unix(),
			}

			token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
			signed, err := token.SignedString([]byte(secret))
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}

			if err := saveTokenToActiveProfile(signed); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			_, _ = fmt.Fprintln(os.Stdout, signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (token subject)")
	cmd.Flags().StringVar(&role, "role", "MEMBER", "Role claim (ADMIN, PI, MEMBER, VIEWER)")
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret shared with the server (HS256)")
	cmd.Flags().DurationVar(&expires, "expires", 24*time.Hour, "Token expiry duration")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}
