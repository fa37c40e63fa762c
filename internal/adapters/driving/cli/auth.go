package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/spsearch/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the access token",
	Long: `Store, inspect and remove the bearer token sent with search requests.

The token is kept in config.toml under auth.token. Setting the ` + TokenEnv + `
environment variable overrides the stored token without touching the file.

Examples:
  # Prompt for the token without echoing it
  spsearch auth login

  # Non-interactive
  spsearch auth login --token "$(az account get-access-token --query accessToken -o tsv)"`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an access token",
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored access token",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which token will be used",
	RunE:  runAuthStatus,
}

var authLoginToken string

// readToken prompts for a token; replaced in tests.
var readToken = readPassword

func init() {
	authLoginCmd.Flags().StringVar(&authLoginToken, "token", "", "access token (prompted for when omitted)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	token := strings.TrimSpace(authLoginToken)
	if token == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Access token: ")
		token = strings.TrimSpace(readToken())
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	token = strings.TrimPrefix(token, "Bearer ")
	if token == "" {
		return fmt.Errorf("%w: token must not be empty", domain.ErrInvalidInput)
	}

	if err := svc.Set(tokenKey, token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Token stored (%s)\n", maskToken(token))
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}
	if err := svc.Set(tokenKey, ""); err != nil {
		return fmt.Errorf("removing token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Token removed")
	if os.Getenv(TokenEnv) != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is still set and will be used\n", TokenEnv)
	}
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	writeTokenStatus(cmd.OutOrStdout(), settings.Auth.Token)
	if settings.Auth.Token == "" && os.Getenv(TokenEnv) == "" {
		return errors.New("not logged in: requests are sent without a token")
	}
	return nil
}

// tokenKey is the settings key holding the token.
//
//nolint:gosec // G101: config key name, not a credential.
const tokenKey = "auth.token"

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
