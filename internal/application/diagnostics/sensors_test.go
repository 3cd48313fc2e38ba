package diagnostics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/assist-core/internal/domain"
)

func TestReadingsOrderAndValues(t *testing.T) {
	t.Parallel()

	last := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	snap := domain.TelemetrySnapshot{
		Status:             "online",
		LastRequestTime:    &last,
		FastPathRate:       75,
		FastPathHits:       3,
		FastPathMisses:     1,
		LLMCallsToday:      2,
		LLMCallsTotal:      9,
		TokensUsedToday:    300,
		TokensUsedTotal:    1200,
		PreResolveAttempts: 4,
		PreResolveHits:     2,
		PreResolveRate:     50,
	}

	readings := Readings(snap)
	require.Len(t, readings, len(Keys()))
	assert.Equal(t, Keys()[0], readings[0].Key)
	assert.Equal(t, "online", readings[0].Value)
	assert.Equal(t, "2024-06-01T08:30:00Z", readings[0].Attributes["last_request"])

	rate, ok := ReadingFor(snap, "fast_path_rate")
	require.True(t, ok)
	assert.Equal(t, 75.0, rate.Value)
	assert.Equal(t, UnitPercent, rate.Unit)
	assert.Equal(t, map[string]any{"hits": 3, "misses": 1}, rate.Attributes)

	tokens, ok := ReadingFor(snap, "tokens_used_today")
	require.True(t, ok)
	assert.Equal(t, 300, tokens.Value)
	assert.Equal(t, map[string]any{"total": 1200}, tokens.Attributes)

	errs, ok := ReadingFor(snap, "llm_errors")
	require.True(t, ok)
	assert.True(t, errs.Diagnostic)
	assert.Nil(t, errs.Attributes)

	_, ok = ReadingFor(snap, "indexed_entities")
	assert.False(t, ok)
}

func TestStatusWithoutRequests(t *testing.T) {
	t.Parallel()

	r, ok := ReadingFor(domain.TelemetrySnapshot{Status: "online"}, "status")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"last_request": nil}, r.Attributes)
}
