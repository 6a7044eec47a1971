package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hy4ri/todo-journal/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a template config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.ConfigPath
			if path == "" {
				p, err := config.ConfigPath()
				if err != nil {
					return fmt.Errorf("failed to get config path: %w", err)
				}
				path = p
			}
			if err := config.WriteTemplate(path); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file created: %s\n\n", path)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  1. Set api.base_url to your todo service")
			fmt.Fprintln(out, "  2. Run 'todo-journal login'")
			return nil
		},
	}
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd)
			var err error
			if email, err = p.ask("Email: ", email); err != nil {
				return err
			}
			if password, err = p.secret("Password: ", password); err != nil {
				return err
			}

			m, err := app.authManager()
			if err != nil {
				return err
			}
			s, err := m.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", s.User.DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var email, password, username string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd)
			var err error
			if email, err = p.ask("Email: ", email); err != nil {
				return err
			}
			if username, err = p.optional("Username (optional): ", username, cmd.Flags().Changed("username")); err != nil {
				return err
			}
			if password, err = p.secret("Password: ", password); err != nil {
				return err
			}

			m, err := app.authManager()
			if err != nil {
				return err
			}
			s, err := m.Register(cmd.Context(), email, password, username)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", s.User.DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().StringVar(&username, "username", "", "Display name")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.authManager()
			if err != nil {
				return err
			}
			if err := m.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.requireSession()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case s.User.Email != "":
				fmt.Fprintf(out, "%s <%s>\n", s.User.DisplayName(), s.User.Email)
			case os.Getenv(config.EnvToken) != "":
				fmt.Fprintf(out, "token from %s\n", config.EnvToken)
			default:
				fmt.Fprintln(out, "logged in")
			}
			fmt.Fprintf(out, "server: %s\n", app.client.BaseURL())
			return nil
		},
	}
}

// prompter asks for missing values on the command's input. Passwords are
// read without echo when the input is a terminal.
type prompter struct {
	in  io.Reader
	out io.Writer
	r   *bufio.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	return &prompter{in: in, out: cmd.ErrOrStderr(), r: bufio.NewReader(in)}
}

func (p *prompter) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ask returns current when set, otherwise prompts until a value is given.
func (p *prompter) ask(label, current string) (string, error) {
	if v := strings.TrimSpace(current); v != "" {
		return v, nil
	}
	fmt.Fprint(p.out, label)
	v, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if v == "" {
		return "", errors.New("a value is required")
	}
	return v, nil
}

// optional prompts once unless the flag was given, and accepts empty input.
func (p *prompter) optional(label, current string, given bool) (string, error) {
	if given || current != "" {
		return strings.TrimSpace(current), nil
	}
	fmt.Fprint(p.out, label)
	v, err := p.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return v, nil
}

func (p *prompter) secret(label, current string) (string, error) {
	if current != "" {
		return current, nil
	}
	f, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return p.ask(label, "")
	}

	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(b) == 0 {
		return "", errors.New("a password is required")
	}
	return string(b), nil
}
