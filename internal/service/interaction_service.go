package service

import (
	"context"
	"errors"

	"github.com/notewall/notewall-backend/internal/domain"
	"github.com/notewall/notewall-backend/internal/dto"
	"github.com/notewall/notewall-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// InteractionService handles likes, views and reports
type InteractionService struct {
	noteRepo       domain.NoteRepository
	commentRepo    domain.CommentRepository
	likeRepo       domain.LikeRepository
	viewRepo       domain.ViewRepository
	reportRepo     domain.ReportRepository
	eventPublisher websocket.EventPublisher
}

// NewInteractionService creates a new InteractionService
func NewInteractionService(
	noteRepo domain.NoteRepository,
	commentRepo domain.CommentRepository,
	likeRepo domain.LikeRepository,
	viewRepo domain.ViewRepository,
	reportRepo domain.ReportRepository,
) *InteractionService {
	return &InteractionService{
		noteRepo:    noteRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		viewRepo:    viewRepo,
		reportRepo:  reportRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *InteractionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *InteractionService) publishEvent(event websocket.Event, rooms ...string) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event, rooms...)
	}
}

// TrackViewResult reports the outcome of a view tracking call
type TrackViewResult struct {
	NoteID    string `json:"noteId"`
	Recorded  bool   `json:"recorded"`
	ViewCount int64  `json:"viewCount"`
}

// ToggleLike likes the target, or removes the like if the actor already liked it
func (s *InteractionService) ToggleLike(ctx context.Context, actorID string, input dto.ToggleLike) (*domain.LikeResult, error) {
	targetType := domain.TargetType(input.TargetType)
	noteID, err := s.resolveTarget(ctx, input.TargetID, targetType)
	if err != nil {
		return nil, err
	}

	result, err := s.likeRepo.Toggle(ctx, actorID, input.TargetID, targetType)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.LikeToggled(map[string]interface{}{
		"targetId":   result.TargetID,
		"targetType": result.TargetType,
		"noteId":     noteID,
		"likeCount":  result.LikeCount,
	}), websocket.RoomWall, websocket.NoteRoom(noteID))
	return result, nil
}

// TrackView records that actorID opened the note. Repeated calls for the same
// pair succeed without recording a second view.
func (s *InteractionService) TrackView(ctx context.Context, actorID, noteID string) (*TrackViewResult, error) {
	recorded := true
	if _, err := s.viewRepo.Record(ctx, actorID, noteID); err != nil {
		if !errors.Is(err, domain.ErrViewAlreadyRecorded) {
			return nil, err
		}
		recorded = false
		log.Debug().Str("note_id", noteID).Str("user_id", actorID).Msg("View already recorded")
	}

	count, err := s.viewRepo.CountByNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	return &TrackViewResult{NoteID: noteID, Recorded: recorded, ViewCount: count}, nil
}

// Report files a moderation report against a note or comment
func (s *InteractionService) Report(ctx context.Context, actorID string, input dto.Report) (*domain.Report, error) {
	targetType := domain.TargetType(input.TargetType)
	if _, err := s.resolveTarget(ctx, input.TargetID, targetType); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.Create(ctx, &domain.Report{
		ReporterID: actorID,
		TargetID:   input.TargetID,
		TargetType: targetType,
		Reason:     input.Reason,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("report_id", report.ID).
		Str("target_id", report.TargetID).
		Str("target_type", string(report.TargetType)).
		Msg("Content reported")
	return report, nil
}

// resolveTarget checks that the target exists and returns the note it belongs to
func (s *InteractionService) resolveTarget(ctx context.Context, targetID string, targetType domain.TargetType) (string, error) {
	switch targetType {
	case domain.TargetTypeNote:
		if _, err := s.noteRepo.GetByID(ctx, targetID, ""); err != nil {
			if errors.Is(err, domain.ErrNoteNotFound) {
				return "", domain.ErrTargetNotFound
			}
			return "", err
		}
		return targetID, nil
	case domain.TargetTypeComment:
		comment, err := s.commentRepo.GetByID(ctx, targetID, "")
		if err != nil {
			if errors.Is(err, domain.ErrCommentNotFound) {
				return "", domain.ErrTargetNotFound
			}
			return "", err
		}
		return comment.NoteID, nil
	}
	return "", domain.ErrInvalidInput
}
