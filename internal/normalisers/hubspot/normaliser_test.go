package hubspot

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var m map[string]any
	require.NoError(t, dec.Decode(&m))
	return m
}

const contact = `{
	"id": "151",
	"properties": {
		"firstname": "Ada",
		"lastname": "Lovelace",
		"email": "ada@example.com",
		"company": "Analytical Engines",
		"associatedcompanyid": "9001",
		"createdate": "2023-11-14T22:13:20.000Z",
		"lastmodifieddate": "1700000060000",
		"hs_object_id": "151"
	},
	"createdAt": "2023-11-14T22:13:20.000Z",
	"archived": false
}`

func TestNormalise_Contact(t *testing.T) {
	item, err := New("424242").Normalise(decode(t, contact))

	require.NoError(t, err)
	assert.Equal(t, "151", item.ID)
	assert.Equal(t, "Ada Lovelace", item.Name)
	assert.Equal(t, ItemType, item.Type)
	assert.False(t, item.Directory)
	assert.True(t, item.Visibility)

	require.NotNil(t, item.CreationTime)
	assert.True(t, time.Unix(1700000000, 0).Equal(*item.CreationTime))
	require.NotNil(t, item.LastModifiedTime)
	assert.True(t, time.Unix(1700000060, 0).Equal(*item.LastModifiedTime))

	require.NotNil(t, item.ParentID)
	assert.Equal(t, "9001", *item.ParentID)
	require.NotNil(t, item.ParentPathOrName)
	assert.Equal(t, "Analytical Engines", *item.ParentPathOrName)

	require.NotNil(t, item.URL)
	assert.Equal(t, "https://app.hubspot.com/contacts/424242/contact/151", *item.URL)

	assert.Equal(t, "ada@example.com", item.Fields["email"])
	assert.Equal(t, false, item.Fields["archived"])
}

func TestNormalise_NoHubID(t *testing.T) {
	item, err := New("").Normalise(decode(t, contact))

	require.NoError(t, err)
	assert.Nil(t, item.URL)
}

func TestNormalise_NameFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		props string
		want  string
	}{
		{"first name only", `{"firstname":"Ada"}`, "Ada"},
		{"last name only", `{"lastname":"Lovelace"}`, "Lovelace"},
		{"email", `{"firstname":" ","email":"ada@example.com"}`, "ada@example.com"},
		{"placeholder", `{}`, "Contact 987654"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decode(t, `{"id":"98765432","properties":`+tt.props+`}`)

			item, err := New("").Normalise(raw)

			require.NoError(t, err)
			assert.Equal(t, tt.want, item.Name)
		})
	}
}

func TestNormalise_ObjectIDFallback(t *testing.T) {
	item, err := New("").Normalise(decode(t, `{"properties":{"hs_object_id":"77"}}`))

	require.NoError(t, err)
	assert.Equal(t, "77", item.ID)
}

func TestNormalise_NumericMillis(t *testing.T) {
	item, err := New("").Normalise(decode(t, `{"id":"1","properties":{"createdate":1700000000000}}`))

	require.NoError(t, err)
	require.NotNil(t, item.CreationTime)
	assert.Equal(t, int64(1700000000), item.CreationTime.Unix())
	assert.Nil(t, item.LastModifiedTime)
	assert.Nil(t, item.ParentID)
	assert.Nil(t, item.ParentPathOrName)
}

func TestNormalise_MissingID(t *testing.T) {
	_, err := New("1").Normalise(decode(t, `{"properties":{"email":"x@example.com"}}`))

	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
}
