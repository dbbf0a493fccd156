package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cristianoliveira/portal-notify/cmd"
	"github.com/cristianoliveira/portal-notify/internal/colors"
	"github.com/cristianoliveira/portal-notify/internal/config"
	"github.com/cristianoliveira/portal-notify/internal/devserver"
	"github.com/spf13/cobra"
)

// NewTokenCmd creates the token command group with explicit dependencies.
func NewTokenCmd(openRing keyringOpener) *cobra.Command {
	if openRing == nil {
		panic("NewTokenCmd: keyring opener cannot be nil")
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the API bearer token",
		Long: `Manage the bearer token sent to the notification API.

USAGE:
    portal-notify token set [<token>]     Store a token in the keyring (reads stdin without an argument)
    portal-notify token clear             Remove the stored token
    portal-notify token status            Show where the token comes from
    portal-notify token issue [OPTIONS]   Mint a token for the local dev backend`,
	}

	tokenCmd.AddCommand(&cobra.Command{
		Use:   "set [<token>]",
		Short: "Store a token in the keyring",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := tokenArg(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := openRing().Set(token); err != nil {
				return fmt.Errorf("token set: %w", err)
			}
			colors.Success("Token stored in keyring")
			if src := config.Get("token_source", "keyring"); src != "keyring" {
				colors.Warning(fmt.Sprintf("token_source is %q; the keyring token is not used until it is set to keyring", src))
			}
			return nil
		},
	})

	tokenCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openRing().Clear(); err != nil {
				return fmt.Errorf("token clear: %w", err)
			}
			colors.Success("Token removed from keyring")
			return nil
		},
	})

	tokenCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show where the token comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := newCredentials()
			if err != nil {
				return err
			}
			token, err := creds.Token(cmd.Context())
			if err != nil {
				return fmt.Errorf("token status: %w", err)
			}
			state := "missing"
			if token != "" {
				state = "present"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "source: %s\ntoken: %s\n", config.Get("token_source", "keyring"), state)
			return nil
		},
	})

	tokenCmd.AddCommand(newTokenIssueCmd(openRing))
	return tokenCmd
}

func newTokenIssueCmd(openRing keyringOpener) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
		secret  string
		save    bool
	)
	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Mint a token for the local dev backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = config.Get("serve_jwt_secret", "")
			}
			if secret == "" {
				return fmt.Errorf("token issue: no secret; set serve_jwt_secret or pass --secret")
			}
			token, err := devserver.IssueToken(secret, subject, ttl, time.Now())
			if err != nil {
				return fmt.Errorf("token issue: %w", err)
			}
			if save {
				if err := openRing().Set(token); err != nil {
					return fmt.Errorf("token issue: %w", err)
				}
				colors.Success("Token stored in keyring")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issueCmd.Flags().StringVar(&subject, "subject", "dev", "Token subject")
	issueCmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	issueCmd.Flags().StringVar(&secret, "secret", "", "Signing secret (default: serve_jwt_secret)")
	issueCmd.Flags().BoolVar(&save, "store", false, "Store the token in the keyring instead of printing it")
	return issueCmd
}

func tokenArg(args []string, in io.Reader) (string, error) {
	var token string
	if len(args) == 1 {
		token = args[0]
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("reading token: %w", err)
		}
		token = line
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("token is empty")
	}
	return token, nil
}

func init() {
	cmd.RootCmd.AddCommand(NewTokenCmd(defaultKeyring))
}
