package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tair/lightspace/internal/analyzer"
	"github.com/tair/lightspace/internal/storefront/domain"
	"github.com/tair/lightspace/internal/storefront/metrics"
	"github.com/tair/lightspace/pkg/logger"
	"github.com/tair/lightspace/pkg/task"
)

// MaxImageSize is the largest accepted room photo
const MaxImageSize = 10 << 20

var errStaleJob = errors.New("analysis job superseded")

// UploadRoomImageCommand describes an uploaded photo. Only metadata is kept.
type UploadRoomImageCommand struct {
	SessionID   string
	Filename    string
	ContentType string
	Size        int64
}

// UploadRoomImageHandler stores an image reference on the session
type UploadRoomImageHandler struct {
	repo  domain.SessionRepository
	tasks *task.Registry
}

// NewUploadRoomImageHandler creates a new upload room image handler
func NewUploadRoomImageHandler(repo domain.SessionRepository, tasks *task.Registry) *UploadRoomImageHandler {
	return &UploadRoomImageHandler{repo: repo, tasks: tasks}
}

// Handle validates the upload and resets any previous analysis
func (h *UploadRoomImageHandler) Handle(ctx context.Context, cmd UploadRoomImageCommand) (*analyzer.ImageRef, *domain.Session, error) {
	if !strings.HasPrefix(cmd.ContentType, "image/") {
		return nil, nil, fmt.Errorf("%w: content type %q is not an image", domain.ErrInvalidImage, cmd.ContentType)
	}
	if cmd.Size <= 0 || cmd.Size > MaxImageSize {
		return nil, nil, fmt.Errorf("%w: size %d out of range", domain.ErrInvalidImage, cmd.Size)
	}

	ref := analyzer.ImageRef{
		ID:          uuid.NewString(),
		Filename:    cmd.Filename,
		ContentType: cmd.ContentType,
		Size:        cmd.Size,
	}

	s, err := h.repo.Update(ctx, cmd.SessionID, func(s *domain.Session) error {
		s.Analysis.SetImage(ref)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store room image: %w", err)
	}

	h.tasks.CancelVersion(AnalysisTaskKey(cmd.SessionID), s.Analysis.Seq)

	logger.Info(ctx).
		Str("session_id", cmd.SessionID).
		Str("image_id", ref.ID).
		Int64("size", ref.Size).
		Msg("Room image uploaded")

	return &ref, s, nil
}

// StartAnalysisCommand represents the command to analyze the uploaded image
type StartAnalysisCommand struct {
	SessionID string
}

// StartAnalysisHandler runs the analyzer as a cancellable background task
type StartAnalysisHandler struct {
	repo     domain.SessionRepository
	analyzer analyzer.Analyzer
	tasks    *task.Registry
	metrics  *metrics.Metrics
}

// NewStartAnalysisHandler creates a new start analysis handler
func NewStartAnalysisHandler(repo domain.SessionRepository, a analyzer.Analyzer, tasks *task.Registry, m *metrics.Metrics) *StartAnalysisHandler {
	return &StartAnalysisHandler{repo: repo, analyzer: a, tasks: tasks, metrics: m}
}

// Handle marks the session as analyzing and returns immediately. The result
// lands on the session when the analyzer finishes, unless the job was
// superseded or cancelled first.
func (h *StartAnalysisHandler) Handle(ctx context.Context, cmd StartAnalysisCommand) (*domain.Session, error) {
	jobID := uuid.NewString()
	var img analyzer.ImageRef

	s, err := h.repo.Update(ctx, cmd.SessionID, func(s *domain.Session) error {
		if err := s.Analysis.Start(jobID); err != nil {
			return err
		}
		img = *s.Analysis.Image
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start analysis: %w", err)
	}

	// A later Start may have committed and scheduled first; its Seq wins.
	sessionID := cmd.SessionID
	h.tasks.ScheduleVersion(AnalysisTaskKey(sessionID), s.Analysis.Seq, 0, func(ctx context.Context) {
		h.run(ctx, sessionID, jobID, img)
	})

	logger.Info(ctx).
		Str("session_id", sessionID).
		Str("job_id", jobID).
		Msg("Room analysis started")

	return s, nil
}

func (h *StartAnalysisHandler) run(ctx context.Context, sessionID, jobID string, img analyzer.ImageRef) {
	log := logger.Logger.With().Str("session_id", sessionID).Str("job_id", jobID).Logger()

	res, err := h.analyzer.Analyze(ctx, img)
	if err != nil {
		if ctx.Err() != nil {
			h.metrics.AnalysisFinished(metrics.OutcomeCancelled)
			log.Debug().Msg("Room analysis cancelled")
			return
		}
		h.metrics.AnalysisFinished(metrics.OutcomeFailed)
		log.Error().Err(err).Msg("Room analysis failed")
		_, _ = h.repo.Update(context.Background(), sessionID, func(s *domain.Session) error {
			if !s.Analysis.Fail(jobID) {
				return errStaleJob
			}
			return nil
		})
		return
	}

	_, err = h.repo.Update(ctx, sessionID, func(s *domain.Session) error {
		if !s.Analysis.Complete(jobID, res) {
			return errStaleJob
		}
		return nil
	})
	switch {
	case err == nil:
		h.metrics.AnalysisFinished(metrics.OutcomeCompleted)
		log.Info().Str("room_type", res.RoomType).Msg("Room analysis completed")
	case errors.Is(err, errStaleJob), errors.Is(err, domain.ErrSessionNotFound), ctx.Err() != nil:
		h.metrics.AnalysisFinished(metrics.OutcomeCancelled)
		log.Debug().Msg("Room analysis result discarded")
	default:
		h.metrics.AnalysisFinished(metrics.OutcomeFailed)
		log.Error().Err(err).Msg("Failed to store analysis result")
	}
}
