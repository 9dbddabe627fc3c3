package service

import (
	"context"

	"github.com/notewall/notewall-backend/internal/domain"
	"github.com/notewall/notewall-backend/internal/dto"
	"github.com/notewall/notewall-backend/internal/websocket"
)

// CommentService handles comment business logic
type CommentService struct {
	commentRepo    domain.CommentRepository
	noteRepo       domain.NoteRepository
	settingsRepo   domain.SettingsRepository
	eventPublisher websocket.EventPublisher
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo domain.CommentRepository, noteRepo domain.NoteRepository, settingsRepo domain.SettingsRepository) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		noteRepo:     noteRepo,
		settingsRepo: settingsRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *CommentService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CommentService) publishEvent(event websocket.Event, rooms ...string) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event, rooms...)
	}
}

// CreateComment attaches a comment to a note. Authors who turned comments off
// only accept comments from themselves.
func (s *CommentService) CreateComment(ctx context.Context, actorID, noteID string, input dto.CreateComment) (*domain.Comment, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID, actorID)
	if err != nil {
		return nil, err
	}

	if note.AuthorID != actorID {
		settings, err := s.settingsRepo.Get(ctx, note.AuthorID)
		if err != nil {
			return nil, err
		}
		if !settings.AllowComments {
			return nil, domain.ErrCommentsDisabled
		}
	}

	created, err := s.commentRepo.Create(ctx, &domain.Comment{
		NoteID:          noteID,
		AuthorID:        actorID,
		Content:         input.Content,
		BackgroundColor: input.BackgroundColor,
		NoteStyle:       domain.NoteStyle(input.NoteStyle),
		SelectedFont:    input.SelectedFont,
		Tilt:            input.Tilt,
	})
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, created.ID, actorID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.CommentCreated(publicComment(comment)), websocket.RoomWall, websocket.NoteRoom(noteID))
	return comment, nil
}

// ListComments returns a page of a note's comments, oldest first
func (s *CommentService) ListComments(ctx context.Context, viewerID, noteID string, query dto.ListCommentsQuery) (*domain.PaginatedComments, error) {
	if _, err := s.noteRepo.GetByID(ctx, noteID, viewerID); err != nil {
		return nil, err
	}

	page, err := s.commentRepo.ListByNote(ctx, noteID, viewerID, query.Page, query.Limit)
	if err != nil {
		return nil, err
	}
	for i, c := range page.Items {
		page.Items[i] = redactComment(c, viewerID)
	}
	return page, nil
}

// DeleteComment removes a comment. The comment author and the note author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, id string) error {
	comment, err := s.commentRepo.GetByID(ctx, id, actorID)
	if err != nil {
		return err
	}

	if comment.AuthorID != actorID {
		note, err := s.noteRepo.GetByID(ctx, comment.NoteID, actorID)
		if err != nil {
			return err
		}
		if note.AuthorID != actorID {
			return domain.ErrForbidden
		}
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvent(
		websocket.CommentDeleted(map[string]string{"id": id, "noteId": comment.NoteID}),
		websocket.RoomWall, websocket.NoteRoom(comment.NoteID),
	)
	return nil
}

func redactComment(c *domain.Comment, viewerID string) *domain.Comment {
	if !c.AuthorAnonymous || c.AuthorID == viewerID {
		return c
	}
	out := *c
	out.AuthorID = ""
	return &out
}

func publicComment(c *domain.Comment) *domain.Comment {
	out := *redactComment(c, "")
	out.LikedByMe = false
	return &out
}
