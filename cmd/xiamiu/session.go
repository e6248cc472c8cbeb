package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/llehouerou/xiamiu/internal/api"
	"github.com/llehouerou/xiamiu/internal/state"
	"github.com/llehouerou/xiamiu/internal/ui/render"
)

// openState opens the state database. Replaced in tests.
var openState = func() (state.Interface, error) {
	return state.Open(logger.Logger)
}

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and remember the session",
	Long: `Log in to the catalog server. The password is read from --password,
or prompted for when stdin is a terminal, or read from the first line of
stdin otherwise. The session is stored in the state database and shared
with the interactive browser.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(args[0])
	if username == "" {
		return errors.New("username is required")
	}

	password := loginPassword
	if password == "" {
		p, err := readPassword(cmd)
		if err != nil {
			return err
		}
		password = p
	}
	if password == "" {
		return errors.New("password is required")
	}

	sess, err := client.Login(cmd.Context(), username, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return errors.New("wrong username or password")
		}
		return err
	}

	st, err := openState()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer st.Close()

	if cfg.RememberSession() {
		if err := st.SaveSession(sess); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", sess.Username)
	return err
}

func readPassword(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", nil
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	st, err := openState()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer st.Close()

	if err := st.DeleteSession(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return err
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	st, err := openState()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	stored, err := st.GetSession()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if stored == nil || !stored.Valid() {
		_, err := fmt.Fprintln(out, "Not logged in.")
		return err
	}

	user, err := client.CurrentUser(cmd.Context(), &stored.Session)
	if errors.Is(err, api.ErrUnauthorized) {
		_ = st.DeleteSession()
		_, err := fmt.Fprintln(out, "Session expired. Log in again.")
		return err
	}
	if err != nil {
		return fmt.Errorf("current user: %w", err)
	}

	fmt.Fprintln(out, titleStyle.Render(render.Sanitize(user.UserName)))
	printField(out, "ID", fmt.Sprint(user.ID))
	printField(out, "Location", user.Location)
	printField(out, "Gender", user.Gender)
	printField(out, "Constellation", user.Constellation)
	if user.Age > 0 {
		printField(out, "Age", fmt.Sprint(user.Age))
	}
	printField(out, "Plays", render.Count(user.PlayCount))
	printField(out, "Joined", user.JoinTime)
	printField(out, "Logged in", render.Ago(stored.SavedAt))
	return nil
}
