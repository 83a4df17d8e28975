package schema

import (
	"errors"
	"testing"

	pkgerrors "sketchddd/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpgrade_FromVersionOne(t *testing.T) {
	doc := Document{
		"name": "Enterprise",
		"maps": []interface{}{
			map[string]interface{}{"name": "M", "pattern": "customer_supplier"},
			map[string]interface{}{"name": "N", "pattern": "anti_corruption_layer"},
		},
	}

	history, err := NewSchemaEvolution().Upgrade(doc)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 2, history[0].Version)

	assert.Equal(t, CurrentVersion, doc[VersionField])
	assert.NotContains(t, doc, "maps")
	maps := doc["context_maps"].([]interface{})
	assert.Equal(t, "CustomerSupplier", maps[0].(map[string]interface{})["pattern"])
	assert.Equal(t, "AntiCorruptionLayer", maps[1].(map[string]interface{})["pattern"])
}

func TestUpgrade_CurrentIsNoop(t *testing.T) {
	doc := Document{VersionField: float64(CurrentVersion), "context_maps": []interface{}{}}
	history, err := NewSchemaEvolution().Upgrade(doc)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestUpgrade_Rejects(t *testing.T) {
	_, err := NewSchemaEvolution().Upgrade(Document{VersionField: 99})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrUnsupportedSchemaVersion))

	_, err = NewSchemaEvolution().Upgrade(Document{VersionField: "two"})
	assert.Error(t, err)

	_, err = NewSchemaEvolution().Upgrade(Document{"maps": []interface{}{"oops"}})
	assert.Error(t, err)
}

func TestRegisterMigration(t *testing.T) {
	s := NewSchemaEvolution()
	noop := func(Document) error { return nil }

	assert.Error(t, s.RegisterMigration(Migration{FromVersion: 2, ToVersion: 4, Up: noop}))
	assert.Error(t, s.RegisterMigration(Migration{FromVersion: 1, ToVersion: 2, Up: noop}))
	assert.Error(t, s.RegisterMigration(Migration{FromVersion: 2, ToVersion: 3}))
	assert.NoError(t, s.RegisterMigration(Migration{FromVersion: 2, ToVersion: 3, Up: noop}))
}
