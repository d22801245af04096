package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/render"
)

func newRegisterCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create a backend account and log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd, a, args[0])
		},
	}
	return cmd
}

func runRegister(cmd *cobra.Command, a *app, email string) error {
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}
	creds := model.Credentials{Email: email, Password: password}

	ctx := cmd.Context()
	u, err := a.client.Register(ctx, creds)
	if err != nil {
		return err
	}
	if err := login(ctx, a, creds); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", u.Email)
	return nil
}

func newLoginCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and store the access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			if err := login(cmd.Context(), a, model.Credentials{Email: args[0], Password: password}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", args[0])
			return nil
		},
	}
	return cmd
}

// login stores the token only after a successful exchange.
func login(ctx context.Context, a *app, creds model.Credentials) error {
	tok, err := a.client.Login(ctx, creds)
	if err != nil {
		return err
	}
	if err := a.tokens.SetToken(tok.AccessToken); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tokens.ClearToken(); err != nil {
				return fmt.Errorf("clearing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			u, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (id %d)\n", u.Email, u.ID)
			if u.TelegramLinked() {
				name := u.TelegramUsername
				if name == "" {
					name = u.TelegramUserID
				}
				fmt.Fprintf(out, "Telegram: linked (%s)\n", name)
			} else {
				fmt.Fprintln(out, render.Muted("Telegram: not linked (run `fintrack telegram-link`)"))
			}
			return nil
		},
	}
}

func newTelegramLinkCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "telegram-link",
		Short: "Get a one-time code for linking the Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			code, err := a.client.TelegramLinkCode(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Send this to the bot: /link %s\n", code.Code)
			if !code.ExpiresAt.IsZero() {
				fmt.Fprintln(out, render.Muted("Expires at "+code.ExpiresAt.Format("2006-01-02 15:04")))
			}
			return nil
		},
	}
}

// readPassword prompts without echo on a terminal and otherwise reads one
// line from stdin.
func readPassword(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return checkPassword(string(b))
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return checkPassword(strings.TrimRight(line, "\r\n"))
}

func checkPassword(p string) (string, error) {
	if p == "" {
		return "", errors.New("password must not be empty")
	}
	return p, nil
}
