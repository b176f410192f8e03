package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

var (
	itemsUserID string
	itemsOrgID  string
	itemsJSON   bool
)

var itemsCmd = &cobra.Command{
	Use:   "items [provider]",
	Short: "List normalised items for a connected user",
	Long: `Fetches every record the provider exposes to the user's cached
credential and prints them as normalised items.

The user must have completed the OAuth flow first, and the credential
store must be shared with the service that ran it (redis or sqlite).`,
	Example: `  sercha-integrations items notion --user u1 --org o1
  sercha-integrations items hubspot --user u1 --org o1 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runItems,
}

func init() {
	itemsCmd.Flags().StringVar(&itemsUserID, "user", "", "user id")
	itemsCmd.Flags().StringVar(&itemsOrgID, "org", "", "organisation id")
	itemsCmd.Flags().BoolVar(&itemsJSON, "json", false, "output items as JSON")
	_ = itemsCmd.MarkFlagRequired("user")
	_ = itemsCmd.MarkFlagRequired("org")
	rootCmd.AddCommand(itemsCmd)
}

func runItems(cmd *cobra.Command, args []string) error {
	scope, err := domain.NewScope(domain.ProviderType(args[0]), itemsOrgID, itemsUserID)
	if err != nil {
		return err
	}

	if err := initServices(cmd.Context()); err != nil {
		return err
	}

	items, err := itemService.ListItems(cmd.Context(), scope)
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}

	if itemsJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal items: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputItemsTable(cmd, items)
}

func outputItemsTable(cmd *cobra.Command, items []*domain.Item) error {
	if len(items) == 0 {
		cmd.Println("No items found.")
		return nil
	}

	cmd.Printf("%d items:\n\n", len(items))
	for i, item := range items {
		kind := item.Type
		if item.Directory {
			kind += "/"
		}
		cmd.Printf("  [%d] %s (%s)\n", i+1, item.Name, kind)
		cmd.Printf("      ID: %s\n", item.ID)
		if item.ParentPathOrName != nil {
			cmd.Printf("      Parent: %s\n", *item.ParentPathOrName)
		} else if item.ParentID != nil {
			cmd.Printf("      Parent: %s\n", *item.ParentID)
		}
		if item.LastModifiedTime != nil {
			cmd.Printf("      Modified: %s\n", item.LastModifiedTime.Format("2006-01-02 15:04"))
		}
		if item.URL != nil {
			cmd.Printf("      %s\n", *item.URL)
		}
	}
	return nil
}
