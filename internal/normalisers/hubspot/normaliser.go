package hubspot

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-integrations/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.ItemNormaliser = (*Normaliser)(nil)

// ItemType is the type of every HubSpot item.
const ItemType = "contact"

// contactURLFormat renders a contact's page in the HubSpot app.
const contactURLFormat = "https://app.hubspot.com/contacts/%s/contact/%s"

// Normaliser maps HubSpot contacts onto items.
type Normaliser struct {
	hubID string
}

// New creates a HubSpot normaliser. hubID is the portal the contacts belong
// to; when empty, items carry no URL.
func New(hubID string) *Normaliser {
	return &Normaliser{hubID: hubID}
}

// Normalise converts one contact object.
func (n *Normaliser) Normalise(raw map[string]any) (*domain.Item, error) {
	props := normalisers.Object(raw, "properties")
	if props == nil {
		props = map[string]any{}
	}

	id := normalisers.String(raw, "id")
	if id == "" {
		id = normalisers.String(props, "hs_object_id")
	}
	if id == "" {
		return nil, &domain.MalformedRecordError{Reason: "hubspot contact has no id"}
	}

	item := domain.NewItem(id, ItemType)
	item.Name = contactName(props, id)
	item.CreationTime = normalisers.ParseTime(props["createdate"], normalisers.UnitMillis)
	item.LastModifiedTime = normalisers.ParseTime(props["lastmodifieddate"], normalisers.UnitMillis)
	item.ParentID = domain.StringPtr(normalisers.String(props, "associatedcompanyid"))
	item.ParentPathOrName = domain.StringPtr(normalisers.String(props, "company"))
	if n.hubID != "" {
		item.URL = domain.StringPtr(fmt.Sprintf(contactURLFormat, n.hubID, id))
	}

	for k, v := range props {
		if v != nil {
			item.Fields[k] = v
		}
	}
	if archived, ok := raw["archived"].(bool); ok {
		item.Fields["archived"] = archived
	}

	return item, nil
}

func contactName(props map[string]any, id string) string {
	full := strings.TrimSpace(normalisers.String(props, "firstname") + " " + normalisers.String(props, "lastname"))
	if full != "" {
		return full
	}
	if email := normalisers.String(props, "email"); email != "" {
		return email
	}
	return normalisers.Placeholder(ItemType, id)
}
