package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/doeshing/assist-core/internal/app"
	"github.com/doeshing/assist-core/internal/application/diagnostics"
	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/infrastructure/cli/helpers"
	"github.com/doeshing/assist-core/internal/infrastructure/executor"
	"github.com/doeshing/assist-core/internal/infrastructure/responder"
)

const sessionHelp = `Enter "<domain> <action> [entity,...] [key=value ...]", "? <free-form text>" or a command:
  :history   show retained turns for this conversation
  :context   show the recent-context block
  :stats     show history and telemetry figures
  :sensors   show telemetry as sensor readings
  :clear     forget this conversation
  :new       start a new conversation
  :help      show this message
  :quit      leave the session`

// NewSessionCommand creates the interactive session command
func NewSessionCommand(container *app.Container) *cobra.Command {
	var conversationID string
	var watch bool
	var offline bool

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run structured requests through the governance core (dry run)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.SessionService == nil {
				return fmt.Errorf(ErrSessionUnavailable)
			}
			if conversationID == "" {
				conversationID = uuid.NewString()
			}

			out := cmd.OutOrStdout()
			container.SessionService.Executor = executor.NewDryRunExecutor(out)
			if offline {
				container.SessionService.Responder = responder.NewOffline()
			}

			r := &sessionRunner{
				container:      container,
				out:            out,
				conversationID: conversationID,
			}
			if watch {
				unsubscribe := container.Telemetry.AddListener(r.printTelemetry)
				defer unsubscribe()
			}
			return r.run(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVarP(&conversationID, "conversation", "c", "", "Conversation id (random when empty)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Print telemetry after every change")
	cmd.Flags().BoolVar(&offline, "offline-responder", false, "Answer free-form and rejected requests with the offline responder")
	return cmd
}

type sessionRunner struct {
	container      *app.Container
	out            io.Writer
	conversationID string

	mu sync.Mutex
}

func (r *sessionRunner) run(ctx context.Context, in io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintf(r.out, "Conversation %s\n", r.conversationID)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, SessionPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := r.command(line); quit {
				return nil
			}
			continue
		}
		r.handle(ctx, line)
	}
}

// command runs a ":" command and reports whether the session should end
func (r *sessionRunner) command(line string) bool {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case ":quit", ":exit", ":q":
		return true
	case ":history":
		turns := r.container.History.GetHistory(r.conversationID)
		if len(turns) == 0 {
			fmt.Fprintln(r.out, MsgNoHistory)
			break
		}
		helpers.DisplayTurns(r.out, turns)
	case ":context":
		block := r.container.History.GetRecentContext(r.conversationID, r.container.Config.History.ContextTurns)
		if block == "" {
			fmt.Fprintln(r.out, MsgNoHistory)
			break
		}
		fmt.Fprintln(r.out, block)
	case ":stats":
		diag := r.container.SessionService.Diagnostics()
		helpers.DisplayHistoryStats(r.out, diag.History)
		helpers.DisplayTelemetry(r.out, diag.Telemetry)
	case ":sensors":
		for _, reading := range diagnostics.Readings(r.container.Telemetry.Snapshot()) {
			fmt.Fprintf(r.out, "%-28s %v %s\n", reading.Name, reading.Value, reading.Unit)
		}
	case ":clear":
		r.container.History.ClearConversation(r.conversationID)
		fmt.Fprintf(r.out, "Cleared conversation %s\n", r.conversationID)
	case ":new":
		r.conversationID = uuid.NewString()
		fmt.Fprintf(r.out, "Conversation %s\n", r.conversationID)
	case ":help":
		fmt.Fprintln(r.out, sessionHelp)
	default:
		fmt.Fprintf(r.out, "Unknown command %s (try :help)\n", line)
	}
	return false
}

func (r *sessionRunner) handle(ctx context.Context, line string) {
	var req domain.SessionRequest
	if text, ok := strings.CutPrefix(line, "?"); ok {
		req = domain.SessionRequest{ConversationID: r.conversationID, Utterance: strings.TrimSpace(text)}
	} else {
		parsed, err := helpers.ParseRequestLine(r.conversationID, line)
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return
		}
		req = parsed
	}

	resp, err := r.container.SessionService.Handle(ctx, req)
	switch {
	case errors.Is(err, domain.ErrNoResponder):
		fmt.Fprintln(r.out, "Free-form requests need a responder (see --offline-responder).")
		return
	case err != nil:
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}

	if resp.Rejection != nil {
		helpers.DisplayRejection(r.out, resp.Rejection)
		if resp.Outcome == domain.OutcomeRejected {
			return
		}
	}
	fmt.Fprintln(r.out, resp.Reply)
}

func (r *sessionRunner) printTelemetry() {
	snap := r.container.Telemetry.Snapshot()
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "  [telemetry] requests=%d fast_path=%.1f%% hits=%d misses=%d\n",
		snap.RequestsToday, snap.FastPathRate, snap.FastPathHits, snap.FastPathMisses)
}
