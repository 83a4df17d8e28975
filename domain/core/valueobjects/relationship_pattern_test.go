package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationshipPatternPredicates(t *testing.T) {
	tests := []struct {
		pattern        RelationshipPattern
		upstream       bool
		symmetric      bool
		translation    bool
		integration    bool
		directionality string
	}{
		{PatternPartnership, false, true, false, true, "bidirectional"},
		{PatternCustomerSupplier, true, false, false, true, "upstream → downstream"},
		{PatternConformist, true, false, false, true, "upstream → downstream"},
		{PatternAntiCorruptionLayer, true, false, true, true, "upstream → downstream (translated)"},
		{PatternSeparateWays, false, false, false, false, "none"},
		{PatternPublishedLanguage, false, false, false, true, "upstream → downstream (via shared language)"},
		{PatternOpenHostService, true, false, false, true, "upstream → downstream (via services)"},
		{PatternSharedKernel, false, true, false, true, "bidirectional (shared)"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern.String(), func(t *testing.T) {
			assert.True(t, tt.pattern.IsValid())
			assert.Equal(t, tt.upstream, tt.pattern.SourceIsUpstream())
			assert.Equal(t, tt.symmetric, tt.pattern.IsSymmetric())
			assert.Equal(t, tt.translation, tt.pattern.RequiresTranslation())
			assert.Equal(t, tt.integration, tt.pattern.HasIntegration())
			assert.Equal(t, tt.directionality, tt.pattern.Directionality())
		})
	}

	assert.Len(t, AllRelationshipPatterns, len(tests))
}

func TestParseRelationshipPattern(t *testing.T) {
	p, err := ParseRelationshipPattern("SharedKernel")
	require.NoError(t, err)
	assert.Equal(t, PatternSharedKernel, p)

	_, err = ParseRelationshipPattern("Friendship")
	assert.Error(t, err)

	var decoded RelationshipPattern
	require.NoError(t, decoded.UnmarshalText([]byte("Conformist")))
	assert.Equal(t, PatternConformist, decoded)
	assert.Error(t, decoded.UnmarshalText([]byte("conformist")))
}
