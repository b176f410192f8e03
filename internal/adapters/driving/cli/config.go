package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sercha-integrations/internal/adapters/driven/config/env"
	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

var (
	appClientID     string
	appClientSecret string
	appRedirectURI  string
	appScopes       []string
	appAuthURL      string
	appTokenURL     string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change the configuration file.

Values are read from ~/.sercha-integrations/config.toml (or --config) and
can be overridden with SERCHA_* environment variables.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetAppCmd = &cobra.Command{
	Use:   "set-app [provider]",
	Short: "Configure the OAuth app of a provider",
	Long: `Stores the OAuth client registered in the provider's developer console.
If --client-secret is omitted the secret is prompted for without echo.`,
	Example: `  sercha-integrations config set-app notion \
    --client-id abc --redirect-uri https://example.com/integrations/notion/oauth2callback`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetApp,
}

func init() {
	configSetAppCmd.Flags().StringVar(&appClientID, "client-id", "", "OAuth client ID")
	configSetAppCmd.Flags().StringVar(&appClientSecret, "client-secret", "", "OAuth client secret")
	configSetAppCmd.Flags().StringVar(&appRedirectURI, "redirect-uri", "", "registered redirect URI")
	configSetAppCmd.Flags().StringSliceVar(&appScopes, "scopes", nil, "scopes to request (comma separated)")
	configSetAppCmd.Flags().StringVar(&appAuthURL, "auth-url", "", "override the authorization endpoint")
	configSetAppCmd.Flags().StringVar(&appTokenURL, "token-url", "", "override the token endpoint")
	_ = configSetAppCmd.MarkFlagRequired("client-id")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetAppCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := initSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Printf("  Frontend origin: %s\n", valueOrDefault(settings.Server.FrontendOrigin, "*"))
	if settings.Server.RateLimitRPS > 0 {
		cmd.Printf("  Rate limit: %g req/s (burst %d)\n", settings.Server.RateLimitRPS, settings.Server.RateLimitBurst)
	} else {
		cmd.Println("  Rate limit: disabled")
	}
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Driver: %s\n", settings.Store.Driver)
	switch settings.Store.Driver {
	case domain.StoreRedis:
		cmd.Printf("  Address: %s\n", settings.Store.RedisAddr)
		cmd.Printf("  Database: %d\n", settings.Store.RedisDB)
		if settings.Store.RedisPassword != "" {
			cmd.Println("  Password: ********")
		}
	case domain.StoreSQLite:
		cmd.Printf("  Path: %s\n", valueOrDefault(settings.Store.SQLitePath, "(default)"))
	}
	cmd.Println()

	cmd.Println("[Fetch]")
	cmd.Printf("  Timeout: %s\n", settings.Fetch.Timeout)
	cmd.Printf("  Max pages: %d\n", settings.Fetch.MaxPages)
	cmd.Println()

	for _, p := range domain.AllProviderTypes() {
		cmd.Printf("[%s]\n", p.DisplayName())
		app, ok := settings.Apps[p]
		if !ok {
			cmd.Println("  Status: not configured")
			cmd.Println()
			continue
		}
		app = app.Redacted()
		cmd.Printf("  Client ID: %s\n", app.ClientID)
		cmd.Printf("  Client secret: %s\n", valueOrDefault(app.ClientSecret, "(not set)"))
		cmd.Printf("  Redirect URI: %s\n", valueOrDefault(app.RedirectURI, "(not set)"))
		if len(app.Scopes) > 0 {
			cmd.Printf("  Scopes: %s\n", strings.Join(app.Scopes, " "))
		}
		status := "configured"
		if err := app.Validate(); err != nil {
			status = "incomplete"
		}
		cmd.Printf("  Status: %s\n", status)
		cmd.Println()
	}

	if configOverlay != nil {
		keys := configOverlay.Overridden()
		if len(keys) > 0 {
			sort.Strings(keys)
			cmd.Println("[Environment overrides]")
			for _, k := range keys {
				v, _ := configOverlay.Get(k)
				cmd.Printf("  %s = %s\n", k, env.Describe(k, v))
			}
			cmd.Println()
		}
		cmd.Printf("Config file: %s\n", configOverlay.Path())
	}

	return nil
}

func runConfigSetApp(cmd *cobra.Command, args []string) error {
	provider := domain.ProviderType(args[0])
	if !provider.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, provider)
	}

	if err := initSettings(); err != nil {
		return err
	}

	secret := appClientSecret
	if secret == "" {
		cmd.Printf("%s client secret: ", provider.DisplayName())
		secret = readSecret(cmd.InOrStdin())
		cmd.Println()
	}

	app := domain.OAuthApp{
		Provider:     provider,
		ClientID:     appClientID,
		ClientSecret: secret,
		RedirectURI:  appRedirectURI,
		Scopes:       appScopes,
		AuthURL:      appAuthURL,
		TokenURL:     appTokenURL,
	}
	if err := settingsService.SetProviderApp(app); err != nil {
		return fmt.Errorf("failed to save %s app: %w", provider, err)
	}

	cmd.Printf("%s app saved.\n", provider.DisplayName())
	if err := app.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		printSetupHint(cmd, provider)
	}
	return nil
}

// Helper functions.

func printSetupHint(cmd *cobra.Command, provider domain.ProviderType) {
	if hint := setupHint(provider); hint != "" {
		cmd.Printf("Hint: %s\n", hint)
		cmd.Printf("Then run: sercha-integrations config set-app %s --client-id ... --redirect-uri ...\n", provider)
	}
}

// readSecret reads a line without echo when in is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readSecret(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	input, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(input)
}

func valueOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
