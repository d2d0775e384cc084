package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tair/lightspace/internal/storefront/domain"
	"github.com/tair/lightspace/internal/storefront/metrics"
	"github.com/tair/lightspace/pkg/logger"
	"github.com/tair/lightspace/pkg/task"
)

// SessionTaskPrefix prefixes every task registry key owned by a session
func SessionTaskPrefix(sessionID string) string { return sessionID + ":" }

// OverlayTaskKey is the task registry key of a session's overlay timer
func OverlayTaskKey(sessionID string) string { return SessionTaskPrefix(sessionID) + "overlay" }

// AnalysisTaskKey is the task registry key of a session's room analysis
func AnalysisTaskKey(sessionID string) string { return SessionTaskPrefix(sessionID) + "analysis" }

// CreateSessionHandler starts a new shopping session
type CreateSessionHandler struct {
	repo    domain.SessionRepository
	metrics *metrics.Metrics
}

// NewCreateSessionHandler creates a new create session handler
func NewCreateSessionHandler(repo domain.SessionRepository, m *metrics.Metrics) *CreateSessionHandler {
	return &CreateSessionHandler{repo: repo, metrics: m}
}

// Handle creates and stores an empty session on the list view
func (h *CreateSessionHandler) Handle(ctx context.Context) (*domain.Session, error) {
	s := domain.NewSession(uuid.NewString(), time.Now())
	if err := h.repo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	h.metrics.SessionStarted()

	logger.Info(ctx).Str("session_id", s.ID).Msg("Session created")
	return s, nil
}

// DeleteSessionCommand represents the command to end a session
type DeleteSessionCommand struct {
	SessionID string
}

// DeleteSessionHandler ends a session and cancels its timers
type DeleteSessionHandler struct {
	repo    domain.SessionRepository
	tasks   *task.Registry
	metrics *metrics.Metrics
}

// NewDeleteSessionHandler creates a new delete session handler
func NewDeleteSessionHandler(repo domain.SessionRepository, tasks *task.Registry, m *metrics.Metrics) *DeleteSessionHandler {
	return &DeleteSessionHandler{repo: repo, tasks: tasks, metrics: m}
}

// Handle executes the delete session command
func (h *DeleteSessionHandler) Handle(ctx context.Context, cmd DeleteSessionCommand) error {
	h.tasks.CancelPrefix(SessionTaskPrefix(cmd.SessionID))

	if err := h.repo.Delete(ctx, cmd.SessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	h.metrics.SessionEnded()

	logger.Info(ctx).Str("session_id", cmd.SessionID).Msg("Session ended")
	return nil
}
