package codec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchddd/domain/core/valueobjects"
	"sketchddd/domain/core/validators"
	"sketchddd/infrastructure/persistence/schema"
	pkgerrors "sketchddd/pkg/errors"
	"sketchddd/tests/fixtures"
)

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			original := fixtures.Commerce()
			c := NewCodec()

			data, err := c.Encode(original, format)
			require.NoError(t, err)

			decoded, err := c.Decode(data, format)
			require.NoError(t, err)

			if diff := cmp.Diff(FromModel(original), FromModel(decoded)); diff != "" {
				t.Errorf("document changed across %s round trip (-want +got):\n%s", format, diff)
			}
			assert.True(t, decoded.ID().Equals(original.ID()))
			assert.True(t, validators.ValidateModel(decoded.Contexts(), decoded.ContextMaps()).IsOK())
		})
	}
}

func TestRoundTrip_PreservesLookups(t *testing.T) {
	c := NewCodec()
	data, err := c.Encode(fixtures.Commerce(), FormatJSON)
	require.NoError(t, err)
	model, err := c.Decode(data, FormatJSON)
	require.NoError(t, err)

	orders, ok := model.Context("Orders")
	require.True(t, ok)
	order, ok := orders.Graph().FindObjectByName("Order")
	require.True(t, ok)
	assert.True(t, orders.IsEntity(order.ID))
	assert.True(t, orders.IsAggregateRoot(order.ID))

	identity, ok := orders.EntityIdentity(order.ID)
	require.True(t, ok)
	m, ok := orders.Graph().Morphism(identity)
	require.True(t, ok)
	assert.True(t, m.IsIdentity)

	cm, ok := model.ContextMap("OrdersToShipping")
	require.True(t, ok)
	assert.Equal(t, valueobjects.PatternCustomerSupplier, cm.Pattern())
	target, ok := cm.ObjectMapping(order.ID)
	require.True(t, ok)
	assert.Equal(t, valueobjects.ObjectID(1), target)
}

func TestDecode_VersionOneYAML(t *testing.T) {
	doc := `
name: Legacy
contexts:
  - name: A
    objects:
      - {id: 0, name: X}
    morphisms: []
  - name: B
    objects:
      - {id: 0, name: Y}
    morphisms: []
maps:
  - name: AtoB
    source: A
    target: B
    pattern: anti_corruption_layer
    object_mappings:
      - {source: 0, target: 0}
`
	model, err := NewCodec().Decode([]byte(doc), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "Legacy", model.Name())
	assert.Equal(t, 0, model.Version())
	require.Len(t, model.ContextMaps(), 1)
	assert.Equal(t, valueobjects.PatternAntiCorruptionLayer, model.ContextMaps()[0].Pattern())
	assert.True(t, validators.ValidateModel(model.Contexts(), model.ContextMaps()).IsOK())
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		target error
	}{
		{"malformed json", `{"name":`, FormatJSON, pkgerrors.ErrInvalidModelDocument},
		{"malformed yaml", "name: [", FormatYAML, pkgerrors.ErrInvalidModelDocument},
		{"missing name", `{"schema_version":2,"contexts":[],"context_maps":[]}`, FormatJSON, pkgerrors.ErrInvalidModelDocument},
		{"bad pattern", `{"schema_version":2,"name":"M","contexts":[],"context_maps":[{"name":"x","source":"a","target":"b","pattern":"Friendship"}]}`, FormatJSON, pkgerrors.ErrInvalidModelDocument},
		{"future schema", `{"schema_version":99,"name":"M"}`, FormatJSON, pkgerrors.ErrUnsupportedSchemaVersion},
		{"unknown format", `{}`, Format("toml"), pkgerrors.ErrUnsupportedFormat},
		{"ids out of order", `{"schema_version":2,"name":"M","contexts":[{"name":"A","objects":[{"id":1,"name":"X"}],"morphisms":[]}],"context_maps":[]}`, FormatJSON, pkgerrors.ErrInvalidModelDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCodec().Decode([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestEncode_StampsCurrentSchemaVersion(t *testing.T) {
	doc, err := NewCodec().DecodeDocument([]byte(`{"name":"M"}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, schema.CurrentVersion, doc.SchemaVersion)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{".JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestSniffFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, SniffFormat([]byte("  {\"name\":\"x\"}")))
	assert.Equal(t, FormatYAML, SniffFormat([]byte("name: x")))
}
