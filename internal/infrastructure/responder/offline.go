// Package responder provides an offline ports.Responder. It performs no
// language understanding and makes no network calls; it answers free-form
// requests with a fixed hint so the LLM path can be exercised locally.
package responder

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/assist-core/internal/ports"
)

const offlineReply = "No language model is configured. Send a structured request such as \"light turn_on light.kitchen brightness=50\"."

// Offline answers every request with the same hint.
type Offline struct{}

// NewOffline builds an offline responder.
func NewOffline() *Offline {
	return &Offline{}
}

// Respond implements ports.Responder. Tokens approximate prompt size as a
// whitespace-separated word count of context plus utterance.
func (o *Offline) Respond(ctx context.Context, req ports.ResponderRequest) (ports.ResponderResponse, error) {
	if err := ctx.Err(); err != nil {
		return ports.ResponderResponse{}, err
	}

	reply := offlineReply
	if turns := countTurns(req.RecentContext); turns > 0 {
		reply = fmt.Sprintf("%s (%d earlier turns in context)", offlineReply, turns)
	}

	return ports.ResponderResponse{
		Reply:  reply,
		Tokens: len(strings.Fields(req.RecentContext)) + len(strings.Fields(req.Utterance)),
	}, nil
}

func countTurns(block string) int {
	n := 0
	for _, line := range strings.Split(block, "\n") {
		if strings.HasPrefix(line, "User: ") {
			n++
		}
	}
	return n
}

var _ ports.Responder = (*Offline)(nil)
