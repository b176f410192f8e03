package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-integrations/internal/adapters/driving/oauth"
	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/logger"
)

var (
	authorizeUserID string
	authorizeOrgID  string
	authorizeOpen   bool
)

// openBrowser is replaced in tests.
var openBrowser = oauth.OpenBrowser

var authorizeCmd = &cobra.Command{
	Use:   "authorize [provider]",
	Short: "Start an OAuth authorization for a user",
	Long: `Issues a CSRF state for the user and prints the provider authorization
URL. The provider redirects back to the app's redirect_uri, which must be
served by "sercha-integrations serve" sharing the same credential store.

The state is valid for ten minutes and can be used once.`,
	Example: `  sercha-integrations authorize hubspot --user u1 --org o1 --open`,
	Args:    cobra.ExactArgs(1),
	RunE:    runAuthorize,
}

func init() {
	authorizeCmd.Flags().StringVar(&authorizeUserID, "user", "", "user id")
	authorizeCmd.Flags().StringVar(&authorizeOrgID, "org", "", "organisation id")
	authorizeCmd.Flags().BoolVar(&authorizeOpen, "open", false, "open the URL in the default browser")
	_ = authorizeCmd.MarkFlagRequired("user")
	_ = authorizeCmd.MarkFlagRequired("org")
	rootCmd.AddCommand(authorizeCmd)
}

func runAuthorize(cmd *cobra.Command, args []string) error {
	scope, err := domain.NewScope(domain.ProviderType(args[0]), authorizeOrgID, authorizeUserID)
	if err != nil {
		return err
	}

	if err := initServices(cmd.Context()); err != nil {
		return err
	}

	result, err := oauthService.Authorize(cmd.Context(), scope)
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotConfigured) {
			printSetupHint(cmd, scope.Provider)
		}
		return fmt.Errorf("authorize %s: %w", scope.Provider, err)
	}

	cmd.Printf("Open this URL to connect %s:\n\n  %s\n", scope.Provider.DisplayName(), result.URL)

	if authorizeOpen {
		if err := openBrowser(result.URL); err != nil {
			logger.Warn("could not open browser: %v", err)
		}
	}
	return nil
}
