package helpers

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/assist-core/internal/domain"
)

// FormatAge renders t relative to now, e.g. "3 minutes ago". A nil time
// renders as "n/a".
func FormatAge(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "n/a"
	}
	return humanize.Time(*t)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// DisplayHistoryStats writes the history summary.
func DisplayHistoryStats(out io.Writer, stats domain.HistoryStats) {
	fmt.Fprintf(out, "Conversations: %d\n", stats.TotalConversations)
	fmt.Fprintf(out, "Turns: %d (avg %.1f per conversation)\n", stats.TotalTurns, stats.AverageTurnsPerConversation)
	fmt.Fprintf(out, "Oldest turn: %s\n", FormatAge(stats.OldestTurn))
	fmt.Fprintf(out, "Newest turn: %s\n", FormatAge(stats.NewestTurn))
}

// DisplayTelemetry writes the telemetry snapshot.
func DisplayTelemetry(out io.Writer, snap domain.TelemetrySnapshot) {
	fmt.Fprintf(out, "Status: %s (last request %s)\n", snap.Status, FormatAge(snap.LastRequestTime))
	fmt.Fprintf(out, "Fast path: %.1f%% (%d hits, %d misses), avg %.1f ms, last %.1f ms\n",
		snap.FastPathRate, snap.FastPathHits, snap.FastPathMisses, snap.FastPathAvgResponseTime, snap.FastPathLastResponseTime)
	fmt.Fprintf(out, "Pre-resolve: %.1f%% (%d of %d)\n", snap.PreResolveRate, snap.PreResolveHits, snap.PreResolveAttempts)
	fmt.Fprintf(out, "LLM: %d today, %d total, %d errors, avg %.1f ms\n",
		snap.LLMCallsToday, snap.LLMCallsTotal, snap.LLMErrors, snap.LLMAvgResponseTime)
	fmt.Fprintf(out, "Tokens: %s today, %s total\n", FormatCount(snap.TokensUsedToday), FormatCount(snap.TokensUsedTotal))
	fmt.Fprintf(out, "Requests today: %s\n", FormatCount(snap.RequestsToday))
}

// DisplayTurns writes conversation turns oldest first.
func DisplayTurns(out io.Writer, turns []domain.ConversationTurn) {
	for _, turn := range turns {
		fmt.Fprintf(out, "[%s] User: %s\n", turn.Timestamp.Format(domain.TimestampFormat), turn.User)
		fmt.Fprintf(out, "  Assistant: %s\n", turn.Assistant)
		if len(turn.Actions) > 0 {
			fmt.Fprintf(out, "  Actions: %d\n", len(turn.Actions))
		}
	}
}

// DisplayRejection writes a registry rejection with its hints.
func DisplayRejection(out io.Writer, rejection *domain.ValidationError) {
	fmt.Fprintf(out, "Rejected (%s): %s\n", rejection.Kind, rejection.Message)
	if len(rejection.Missing) > 0 {
		fmt.Fprintf(out, "  missing: %s\n", strings.Join(rejection.Missing, ", "))
	}
}

// SortedKeys returns map keys in order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
