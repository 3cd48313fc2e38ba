// Package history keeps a bounded, in-memory record of recent conversation
// turns so prompt construction can refer back to what was just said or done.
package history

import (
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/ports"
)

// Options configures a Manager. Zero values fall back to the package defaults.
type Options struct {
	MaxAge   time.Duration
	MaxTurns int
	Clock    ports.Clock
	Logger   ports.Logger
}

// Manager stores conversation turns keyed by conversation id. Eviction is
// lazy: a conversation is trimmed whenever it is read or written, and Sweep
// trims every conversation at once.
type Manager struct {
	mu            sync.Mutex
	conversations map[string][]domain.ConversationTurn
	maxAge        time.Duration
	maxTurns      int
	clock         ports.Clock
	logger        ports.Logger
}

// NewManager creates an empty history manager.
func NewManager(opts Options) *Manager {
	if opts.MaxAge <= 0 {
		opts.MaxAge = domain.DefaultHistoryMaxAge
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = domain.DefaultMaxTurnsPerConversation
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	return &Manager{
		conversations: make(map[string][]domain.ConversationTurn),
		maxAge:        opts.MaxAge,
		maxTurns:      opts.MaxTurns,
		clock:         opts.Clock,
		logger:        opts.Logger,
	}
}

// AddTurn appends a turn stamped with the current time and trims the
// conversation it belongs to.
func (m *Manager) AddTurn(conversationID, user, assistant string, actions ...domain.ActionRecord) {
	turn := domain.ConversationTurn{
		Timestamp: m.clock.Now(),
		User:      user,
		Assistant: assistant,
		Actions:   cloneActions(actions),
	}

	m.mu.Lock()
	m.conversations[conversationID] = append(m.conversations[conversationID], turn)
	m.evictLocked(conversationID)
	count := len(m.conversations[conversationID])
	m.mu.Unlock()

	m.debug("history turn added", map[string]interface{}{
		"conversation": conversationID,
		"turns":        count,
	})
}

// GetHistory returns a copy of the retained turns, oldest first. An unknown
// conversation yields an empty slice.
func (m *Manager) GetHistory(conversationID string) []domain.ConversationTurn {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked(conversationID)
	return cloneTurns(m.conversations[conversationID])
}

// GetRecentContext renders the last maxTurns turns as prompt text. A
// non-positive maxTurns uses domain.DefaultContextTurns. The result is empty
// when the conversation has no retained turns.
func (m *Manager) GetRecentContext(conversationID string, maxTurns int) string {
	if maxTurns <= 0 {
		maxTurns = domain.DefaultContextTurns
	}
	turns := m.GetHistory(conversationID)
	if len(turns) == 0 {
		return ""
	}
	if len(turns) > maxTurns {
		turns = turns[len(turns)-maxTurns:]
	}

	lines := []string{"Recent conversation:"}
	for _, turn := range turns {
		lines = append(lines, "User: "+turn.User, "Assistant: "+turn.Assistant)
		if summary := summarizeActions(turn.Actions); summary != "" {
			lines = append(lines, "Actions: "+summary)
		}
	}
	return strings.Join(lines, "\n")
}

// ClearConversation drops a single conversation.
func (m *Manager) ClearConversation(conversationID string) {
	m.mu.Lock()
	_, existed := m.conversations[conversationID]
	delete(m.conversations, conversationID)
	m.mu.Unlock()

	if existed {
		m.debug("history conversation cleared", map[string]interface{}{"conversation": conversationID})
	}
}

// ClearAll drops every conversation.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	m.conversations = make(map[string][]domain.ConversationTurn)
	m.mu.Unlock()

	m.debug("history cleared", nil)
}

// Sweep runs the eviction pass over every conversation and returns how many
// conversations were dropped because nothing in them was retained.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id := range m.conversations {
		if !m.evictLocked(id) {
			removed++
		}
	}
	return removed
}

// Conversations lists the ids currently held, sorted.
func (m *Manager) Conversations() []string {
	m.mu.Lock()
	ids := make([]string, 0, len(m.conversations))
	for id := range m.conversations {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	sort.Strings(ids)
	return ids
}

// GetStats scans what is currently held. It does not evict, so a stale
// conversation that was never touched again is still counted until Sweep runs.
func (m *Manager) GetStats() domain.HistoryStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	var stats domain.HistoryStats
	var oldest, newest time.Time
	for _, turns := range m.conversations {
		stats.TotalConversations++
		stats.TotalTurns += len(turns)
		for _, turn := range turns {
			if oldest.IsZero() || turn.Timestamp.Before(oldest) {
				oldest = turn.Timestamp
			}
			if newest.IsZero() || turn.Timestamp.After(newest) {
				newest = turn.Timestamp
			}
		}
	}
	if stats.TotalConversations > 0 {
		stats.AverageTurnsPerConversation = round1(float64(stats.TotalTurns) / float64(stats.TotalConversations))
	}
	if stats.TotalTurns > 0 {
		stats.OldestTurn = &oldest
		stats.NewestTurn = &newest
	}
	return stats
}

// evictLocked trims one conversation by age, then by count, and removes it
// when empty. It reports whether the conversation still exists.
func (m *Manager) evictLocked(conversationID string) bool {
	turns, ok := m.conversations[conversationID]
	if !ok {
		return false
	}

	cutoff := m.clock.Now().Add(-m.maxAge)
	kept := turns[:0]
	for _, turn := range turns {
		if turn.Timestamp.After(cutoff) {
			kept = append(kept, turn)
		}
	}
	if len(kept) > m.maxTurns {
		kept = append([]domain.ConversationTurn(nil), kept[len(kept)-m.maxTurns:]...)
	}

	if len(kept) == 0 {
		delete(m.conversations, conversationID)
		return false
	}
	m.conversations[conversationID] = kept
	return true
}

func (m *Manager) debug(msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Debug(msg, fields)
	}
}

func summarizeActions(actions []domain.ActionRecord) string {
	parts := make([]string, 0, len(actions))
	for _, action := range actions {
		switch action.Type {
		case domain.ActionIntentExecuted:
			parts = append(parts, "Executed "+action.Intent+" on "+strings.Join(action.EntityIDs, ", "))
		case domain.ActionEntitiesMentioned:
			parts = append(parts, "Referenced entities: "+strings.Join(action.EntityIDs, ", "))
		}
	}
	return strings.Join(parts, "; ")
}

func cloneTurns(in []domain.ConversationTurn) []domain.ConversationTurn {
	out := make([]domain.ConversationTurn, len(in))
	for i, turn := range in {
		turn.Actions = cloneActions(turn.Actions)
		out[i] = turn
	}
	return out
}

func cloneActions(in []domain.ActionRecord) []domain.ActionRecord {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.ActionRecord, len(in))
	for i, action := range in {
		action.EntityIDs = append([]string(nil), action.EntityIDs...)
		out[i] = action
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
