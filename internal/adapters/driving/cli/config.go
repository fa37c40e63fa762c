package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// TokenEnv names the environment variable that overrides the stored token.
//
//nolint:gosec // G101: variable name, not a credential.
const TokenEnv = "SPSEARCH_TOKEN"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change configuration",
	Long: `View and change the settings stored in config.toml.

Keys use dotted names, for example:
  spsearch config set site.url https://contoso.sharepoint.com/sites/hr
  spsearch config set search.debounce_ms 250
  spsearch config set search.partial_results true
  spsearch config unset ui.title

Run 'spsearch config keys' for the full list.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List recognised setting keys",
	RunE:  runConfigKeys,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	settings, err := resolveSettings()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Current Configuration")
	fmt.Fprintln(out, "=====================")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Site]")
	fmt.Fprintf(out, "  URL: %s\n", orNotSet(settings.Site.URL))
	if siteURL != "" {
		fmt.Fprintln(out, "  (overridden by --site)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Auth]")
	writeTokenStatus(out, settings.Auth.Token)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Search]")
	fmt.Fprintf(out, "  Debounce: %s\n", settings.Search.Debounce)
	fmt.Fprintf(out, "  Minimum query length: %d\n", settings.Search.MinQueryLength)
	fmt.Fprintf(out, "  Row limit: %d\n", settings.Search.RowLimit)
	fmt.Fprintf(out, "  Partial results: %t\n", settings.Search.PartialResults)
	fmt.Fprintf(out, "  Date layout: %s\n", settings.Search.DateLayout)
	fmt.Fprintf(out, "  Timeout: %s\n", settings.Search.Timeout)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[UI]")
	fmt.Fprintf(out, "  Title: %s\n", orNotSet(settings.UI.Title))
	fmt.Fprintf(out, "  Placeholder: %s\n", settings.UI.Placeholder)
	fmt.Fprintln(out)

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(out, "Status: not ready (%v)\n", err)
	} else {
		fmt.Fprintln(out, "Status: ready")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}
	key, value := args[0], args[1]
	if err := svc.Set(key, value); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}
	if err := svc.Set(args[0], ""); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(svc.Keys(), "\n"))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}
	p, ok := svc.(interface{ ConfigPath() string })
	if !ok || p.ConfigPath() == "" {
		return fmt.Errorf("configuration is not file backed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), p.ConfigPath())
	return nil
}

func writeTokenStatus(out io.Writer, stored string) {
	if stored != "" {
		fmt.Fprintf(out, "  Token: %s\n", maskToken(stored))
	} else {
		fmt.Fprintln(out, "  Token: (not set)")
	}
	if os.Getenv(TokenEnv) != "" {
		fmt.Fprintf(out, "  (overridden by %s)\n", TokenEnv)
	}
}

func orNotSet(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
