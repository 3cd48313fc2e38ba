package domain

import "time"

// ActionType tags a structured action attached to a conversation turn.
type ActionType string

const (
	ActionIntentExecuted    ActionType = "intent_executed"
	ActionEntitiesMentioned ActionType = "entities_mentioned"
)

// ActionRecord describes what a turn did or referred to.
type ActionRecord struct {
	Type      ActionType `json:"type"`
	Intent    string     `json:"intent,omitempty"`
	EntityIDs []string   `json:"entity_ids,omitempty"`
}

// IntentExecuted builds an intent_executed record.
func IntentExecuted(intent string, entityIDs ...string) ActionRecord {
	return ActionRecord{Type: ActionIntentExecuted, Intent: intent, EntityIDs: entityIDs}
}

// EntitiesMentioned builds an entities_mentioned record.
func EntitiesMentioned(entityIDs ...string) ActionRecord {
	return ActionRecord{Type: ActionEntitiesMentioned, EntityIDs: entityIDs}
}

// ConversationTurn is one user/assistant exchange.
type ConversationTurn struct {
	Timestamp time.Time      `json:"timestamp"`
	User      string         `json:"user"`
	Assistant string         `json:"assistant"`
	Actions   []ActionRecord `json:"actions,omitempty"`
}

// HistoryStats summarises everything the history manager currently retains.
// OldestTurn and NewestTurn are nil when no turn is retained.
type HistoryStats struct {
	TotalConversations          int        `json:"total_conversations"`
	TotalTurns                  int        `json:"total_turns"`
	AverageTurnsPerConversation float64    `json:"average_turns_per_conversation"`
	OldestTurn                  *time.Time `json:"oldest_turn"`
	NewestTurn                  *time.Time `json:"newest_turn"`
}
