// Package session wires the registry, history and telemetry together for a
// single request: validate, time, execute, record.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doeshing/assist-core/internal/application/history"
	"github.com/doeshing/assist-core/internal/application/telemetry"
	"github.com/doeshing/assist-core/internal/domain"
	"github.com/doeshing/assist-core/internal/ports"
)

// Service handles requests end-to-end. Responder, Resolver, Audit and Clock
// are optional.
type Service struct {
	Registry     ports.ActionRegistry
	History      *history.Manager
	Telemetry    *telemetry.Aggregator
	Executor     ports.ServiceExecutor
	Responder    ports.Responder
	Resolver     ports.EntityResolver
	Audit        ports.AuditRepository
	Logger       ports.Logger
	Clock        ports.Clock
	ContextTurns int
}

// Handle processes one request. Registry rejections are not errors: they
// come back in the response, with the rejection message as the reply when
// no responder can take over. Errors from the executor or responder are
// returned wrapped.
func (s *Service) Handle(ctx context.Context, req domain.SessionRequest) (domain.SessionResponse, error) {
	if s.Registry == nil || s.History == nil || s.Telemetry == nil || s.Executor == nil || s.Logger == nil {
		return domain.SessionResponse{}, errors.New("session.Service dependencies not satisfied")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.Telemetry.RecordRequest()
	started := s.now()

	var rejection *domain.ValidationError
	if req.Structured() {
		entityIDs := s.preResolve(ctx, req)

		service, err := s.validate(req)
		if err == nil {
			return s.execute(ctx, req, service, entityIDs, started)
		}
		if !errors.As(err, &rejection) {
			return domain.SessionResponse{}, err
		}

		s.Telemetry.RecordFastPathMiss()
		s.Logger.Debug("fast path rejected", map[string]interface{}{
			"domain": req.Domain,
			"action": req.Action,
			"reason": string(rejection.Kind),
		})

		if s.Responder == nil {
			return s.reject(req, rejection, entityIDs, started), nil
		}
	}

	if s.Responder == nil {
		return domain.SessionResponse{}, domain.ErrNoResponder
	}
	resp, err := s.respond(ctx, req, started)
	resp.Rejection = rejection
	return resp, err
}

// Diagnostics sweeps stale conversations and reports history and telemetry
// figures together.
func (s *Service) Diagnostics() domain.Diagnostics {
	s.History.Sweep()
	return domain.Diagnostics{
		History:   s.History.GetStats(),
		Telemetry: s.Telemetry.Snapshot(),
	}
}

func (s *Service) preResolve(ctx context.Context, req domain.SessionRequest) []string {
	entityIDs := append([]string(nil), req.EntityIDs...)
	if len(entityIDs) > 0 || s.Resolver == nil {
		return entityIDs
	}
	ids, ok := s.Resolver.Resolve(ctx, req.Utterance, req.Domain)
	s.Telemetry.RecordPreResolveAttempt(ok)
	if ok {
		return ids
	}
	return nil
}

func (s *Service) validate(req domain.SessionRequest) (string, error) {
	service, err := s.Registry.ValidateAction(req.Domain, req.Action)
	if err != nil {
		return "", err
	}
	if err := s.Registry.ValidateParameters(req.Domain, service, req.Params); err != nil {
		return "", err
	}
	return service, nil
}

func (s *Service) execute(ctx context.Context, req domain.SessionRequest, service string, entityIDs []string, started time.Time) (domain.SessionResponse, error) {
	call := domain.ServiceCall{
		Domain:    req.Domain,
		Service:   service,
		EntityIDs: entityIDs,
		Data:      req.Params,
	}

	var result domain.ServiceResult
	err := s.Telemetry.Track(ctx, domain.OperationFastPath, func(ctx context.Context) error {
		var callErr error
		result, callErr = s.Executor.CallService(ctx, call)
		return callErr
	})
	intent := req.Domain + "." + service
	if err != nil {
		s.Logger.Error("service call failed", err, map[string]interface{}{"service": intent})
		s.audit(req, service, domain.OutcomeFailed, err.Error(), started)
		return domain.SessionResponse{}, fmt.Errorf("call %s: %w", intent, err)
	}

	reply := result.Message
	if reply == "" {
		reply = "Done: " + intent
	}
	actions := []domain.ActionRecord{domain.IntentExecuted(intent, entityIDs...)}
	s.History.AddTurn(req.ConversationID, req.Utterance, reply, actions...)
	s.audit(req, service, domain.OutcomeExecuted, "", started)

	return domain.SessionResponse{
		Reply:   reply,
		Service: service,
		Outcome: domain.OutcomeExecuted,
		Actions: actions,
	}, nil
}

func (s *Service) reject(req domain.SessionRequest, rejection *domain.ValidationError, entityIDs []string, started time.Time) domain.SessionResponse {
	var actions []domain.ActionRecord
	if len(entityIDs) > 0 {
		actions = append(actions, domain.EntitiesMentioned(entityIDs...))
	}
	s.History.AddTurn(req.ConversationID, req.Utterance, rejection.Message, actions...)
	s.audit(req, rejection.Service, domain.OutcomeRejected, rejection.Message, started)

	return domain.SessionResponse{
		Reply:     rejection.Message,
		Service:   rejection.Service,
		Outcome:   domain.OutcomeRejected,
		Rejection: rejection,
		Actions:   actions,
	}
}

func (s *Service) respond(ctx context.Context, req domain.SessionRequest, started time.Time) (domain.SessionResponse, error) {
	prompt := ports.ResponderRequest{
		ConversationID: req.ConversationID,
		Utterance:      req.Utterance,
		RecentContext:  s.History.GetRecentContext(req.ConversationID, s.ContextTurns),
	}

	var out ports.ResponderResponse
	err := s.Telemetry.Track(ctx, domain.OperationLLM, func(ctx context.Context) error {
		var respondErr error
		out, respondErr = s.Responder.Respond(ctx, prompt)
		return respondErr
	}, telemetry.WithTokenCounter(func() (int, error) {
		return out.Tokens, nil
	}))
	if err != nil {
		s.Telemetry.RecordLLMError()
		s.Logger.Error("responder failed", err, map[string]interface{}{"conversation": req.ConversationID})
		s.audit(req, "", domain.OutcomeFailed, err.Error(), started)
		return domain.SessionResponse{}, fmt.Errorf("respond: %w", err)
	}

	s.History.AddTurn(req.ConversationID, req.Utterance, out.Reply, out.Actions...)
	s.audit(req, "", domain.OutcomeAnswered, "", started)

	return domain.SessionResponse{
		Reply:   out.Reply,
		Outcome: domain.OutcomeAnswered,
		Actions: out.Actions,
	}, nil
}

func (s *Service) audit(req domain.SessionRequest, service string, outcome domain.AuditOutcome, reason string, started time.Time) {
	if s.Audit == nil {
		return
	}
	now := s.now()
	record := domain.AuditRecord{
		Timestamp:      now,
		ConversationID: req.ConversationID,
		Utterance:      req.Utterance,
		Domain:         req.Domain,
		Action:         req.Action,
		Service:        service,
		Outcome:        outcome,
		Reason:         reason,
		DurationMS:     float64(now.Sub(started)) / float64(time.Millisecond),
	}
	if err := s.Audit.Save(record); err != nil {
		s.Logger.Warn("audit save failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}
