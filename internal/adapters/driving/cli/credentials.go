package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

var (
	credentialsUserID string
	credentialsOrgID  string
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials [provider]",
	Short: "Show whether a user has connected a provider",
	Long: `Looks up the cached credential for the user. The access token itself
is never printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runCredentials,
}

func init() {
	credentialsCmd.Flags().StringVar(&credentialsUserID, "user", "", "user id")
	credentialsCmd.Flags().StringVar(&credentialsOrgID, "org", "", "organisation id")
	_ = credentialsCmd.MarkFlagRequired("user")
	_ = credentialsCmd.MarkFlagRequired("org")
	rootCmd.AddCommand(credentialsCmd)
}

func runCredentials(cmd *cobra.Command, args []string) error {
	scope, err := domain.NewScope(domain.ProviderType(args[0]), credentialsOrgID, credentialsUserID)
	if err != nil {
		return err
	}

	if err := initServices(cmd.Context()); err != nil {
		return err
	}

	cred, err := oauthService.Credentials(cmd.Context(), scope)
	if errors.Is(err, domain.ErrCredentialNotFound) {
		cmd.Printf("%s: not connected\n", scope.Provider.DisplayName())
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading credentials: %w", err)
	}

	cmd.Printf("%s: connected\n", scope.Provider.DisplayName())
	if cred.TokenType != "" {
		cmd.Printf("  Token type: %s\n", cred.TokenType)
	}
	cmd.Printf("  Lifetime: %s\n", cred.TTL())
	return nil
}
