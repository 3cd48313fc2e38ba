package history

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/assist-core/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestAddTurnKeepsMostRecentTurns(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	m := NewManager(Options{MaxTurns: 20, Clock: clock})
	for i := 0; i < 25; i++ {
		m.AddTurn("c1", fmt.Sprintf("user %d", i), fmt.Sprintf("assistant %d", i))
		clock.Advance(time.Second)
	}

	turns := m.GetHistory("c1")
	require.Len(t, turns, 20)
	assert.Equal(t, "user 5", turns[0].User)
	assert.Equal(t, "user 24", turns[19].User)
	for i := 1; i < len(turns); i++ {
		assert.True(t, turns[i-1].Timestamp.Before(turns[i].Timestamp))
	}
}

func TestAgeEvictionOnTouch(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	m := NewManager(Options{MaxAge: time.Hour, Clock: clock})

	m.AddTurn("c1", "old", "reply")
	clock.Advance(45 * time.Minute)
	m.AddTurn("c1", "new", "reply")
	clock.Advance(30 * time.Minute)

	turns := m.GetHistory("c1")
	require.Len(t, turns, 1)
	assert.Equal(t, "new", turns[0].User)

	clock.Advance(time.Hour)
	assert.Empty(t, m.GetHistory("c1"))
	assert.Equal(t, 0, m.GetStats().TotalConversations)
	assert.Empty(t, m.Conversations())
}

func TestTurnExactlyAtCutoffIsEvicted(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	m := NewManager(Options{MaxAge: time.Hour, Clock: clock})
	m.AddTurn("c1", "hi", "hello")
	clock.Advance(time.Hour)

	assert.Empty(t, m.GetHistory("c1"))
}

func TestGetHistoryReturnsCopy(t *testing.T) {
	t.Parallel()

	m := NewManager(Options{Clock: newFakeClock()})
	m.AddTurn("c1", "turn on the light", "done", domain.IntentExecuted("light.turn_on", "light.kitchen"))

	turns := m.GetHistory("c1")
	turns[0].User = "changed"
	turns[0].Actions[0].EntityIDs[0] = "light.hall"

	again := m.GetHistory("c1")
	assert.Equal(t, "turn on the light", again[0].User)
	assert.Equal(t, "light.kitchen", again[0].Actions[0].EntityIDs[0])
	assert.Empty(t, m.GetHistory("unknown"))
}

func TestGetRecentContext(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	m := NewManager(Options{Clock: clock})
	assert.Equal(t, "", m.GetRecentContext("c1", 3))

	m.AddTurn("c1", "first", "one")
	m.AddTurn("c1", "turn on the kitchen lights", "Done",
		domain.IntentExecuted("HassTurnOn", "light.kitchen", "light.pantry"),
		domain.EntitiesMentioned("sensor.kitchen_temperature"),
	)
	m.AddTurn("c1", "thanks", "You're welcome")

	want := "Recent conversation:\n" +
		"User: turn on the kitchen lights\n" +
		"Assistant: Done\n" +
		"Actions: Executed HassTurnOn on light.kitchen, light.pantry; Referenced entities: sensor.kitchen_temperature\n" +
		"User: thanks\n" +
		"Assistant: You're welcome"
	assert.Equal(t, want, m.GetRecentContext("c1", 2))

	all := m.GetRecentContext("c1", 0)
	assert.Contains(t, all, "User: first")
	assert.Contains(t, m.GetRecentContext("c1", 10), "User: first")
}

func TestClear(t *testing.T) {
	t.Parallel()

	m := NewManager(Options{Clock: newFakeClock()})
	m.AddTurn("a", "u", "r")
	m.AddTurn("b", "u", "r")

	m.ClearConversation("a")
	m.ClearConversation("missing")
	assert.Equal(t, []string{"b"}, m.Conversations())

	m.ClearAll()
	assert.Empty(t, m.Conversations())
}

func TestGetStats(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	m := NewManager(Options{Clock: clock})

	empty := m.GetStats()
	assert.Zero(t, empty.TotalConversations)
	assert.Nil(t, empty.OldestTurn)
	assert.Nil(t, empty.NewestTurn)

	start := clock.Now()
	m.AddTurn("a", "u", "r")
	clock.Advance(time.Minute)
	m.AddTurn("a", "u", "r")
	clock.Advance(time.Minute)
	m.AddTurn("b", "u", "r")

	stats := m.GetStats()
	assert.Equal(t, 2, stats.TotalConversations)
	assert.Equal(t, 3, stats.TotalTurns)
	assert.Equal(t, 1.5, stats.AverageTurnsPerConversation)
	require.NotNil(t, stats.OldestTurn)
	require.NotNil(t, stats.NewestTurn)
	assert.True(t, stats.OldestTurn.Equal(start))
	assert.True(t, stats.NewestTurn.Equal(start.Add(2*time.Minute)))
	assert.Equal(t, stats, m.GetStats())

	m.AddTurn("c", "u", "r")
	assert.Equal(t, 1.3, m.GetStats().AverageTurnsPerConversation)
}

func TestSweepDropsUntouchedStaleConversations(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	m := NewManager(Options{MaxAge: time.Hour, Clock: clock})
	m.AddTurn("stale", "u", "r")
	clock.Advance(2 * time.Hour)
	m.AddTurn("fresh", "u", "r")

	assert.Equal(t, 2, m.GetStats().TotalConversations)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, []string{"fresh"}, m.Conversations())
}

func TestConcurrentAddTurn(t *testing.T) {
	t.Parallel()

	m := NewManager(Options{MaxTurns: 1000})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.AddTurn("shared", fmt.Sprintf("%d-%d", i, j), "ok")
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.GetHistory("shared"), 400)
}
