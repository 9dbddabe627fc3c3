package service

import (
	"context"

	"github.com/notewall/notewall-backend/internal/domain"
	"github.com/notewall/notewall-backend/internal/dto"
	"github.com/notewall/notewall-backend/internal/websocket"
)

// NoteService handles note business logic
type NoteService struct {
	noteRepo       domain.NoteRepository
	eventPublisher websocket.EventPublisher
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo domain.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *NoteService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *NoteService) publishEvent(event websocket.Event, rooms ...string) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event, rooms...)
	}
}

// CreateNote posts a note to the wall on behalf of actorID
func (s *NoteService) CreateNote(ctx context.Context, actorID string, input dto.CreateNote) (*domain.Note, error) {
	created, err := s.noteRepo.Create(ctx, &domain.Note{
		AuthorID:        actorID,
		Content:         input.Content,
		BackgroundColor: input.BackgroundColor,
		NoteStyle:       domain.NoteStyle(input.NoteStyle),
		ClipType:        input.ClipType,
		Tilt:            input.Tilt,
		SelectedFont:    input.SelectedFont,
	})
	if err != nil {
		return nil, err
	}

	// re-read so the author's anonymity setting is applied to the broadcast copy
	note, err := s.noteRepo.GetByID(ctx, created.ID, actorID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NoteCreated(publicNote(note)), websocket.RoomWall)
	return note, nil
}

// GetNote retrieves a note as seen by viewerID (empty for anonymous callers)
func (s *NoteService) GetNote(ctx context.Context, viewerID, id string) (*domain.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	return redactNote(note, viewerID), nil
}

// ListNotes returns one page of the wall
func (s *NoteService) ListNotes(ctx context.Context, viewerID string, query dto.ListNotesQuery) (*domain.PaginatedNotes, error) {
	page, err := s.noteRepo.List(ctx, &domain.NoteFilters{
		Page:     query.Page,
		Limit:    query.Limit,
		Sort:     domain.NoteSort(query.Sort),
		ViewerID: viewerID,
	})
	if err != nil {
		return nil, err
	}
	for i, note := range page.Items {
		page.Items[i] = redactNote(note, viewerID)
	}
	return page, nil
}

// UpdateNote applies a partial update. Only the author may edit a note.
func (s *NoteService) UpdateNote(ctx context.Context, actorID, id string, input dto.UpdateNoteRequest) (*domain.Note, error) {
	existing, err := s.noteRepo.GetByID(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != actorID {
		return nil, domain.ErrForbidden
	}

	data := &domain.UpdateNoteData{
		Content:         input.Content,
		BackgroundColor: input.BackgroundColor,
		ClipType:        input.ClipType,
		Tilt:            input.Tilt,
		SelectedFont:    input.SelectedFont,
	}
	if input.NoteStyle != nil {
		style := domain.NoteStyle(*input.NoteStyle)
		data.NoteStyle = &style
	}
	if data.IsEmpty() {
		return existing, nil
	}

	if _, err := s.noteRepo.Update(ctx, id, data); err != nil {
		return nil, err
	}
	note, err := s.noteRepo.GetByID(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NoteUpdated(publicNote(note)), websocket.RoomWall, websocket.NoteRoom(id))
	return note, nil
}

// DeleteNote removes a note and everything attached to it. Only the author may delete.
func (s *NoteService) DeleteNote(ctx context.Context, actorID, id string) error {
	existing, err := s.noteRepo.GetByID(ctx, id, actorID)
	if err != nil {
		return err
	}
	if existing.AuthorID != actorID {
		return domain.ErrForbidden
	}

	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvent(websocket.NoteDeleted(map[string]string{"id": id}), websocket.RoomWall, websocket.NoteRoom(id))
	return nil
}

// redactNote hides the author of an anonymous note from everyone but the author
func redactNote(note *domain.Note, viewerID string) *domain.Note {
	if !note.AuthorAnonymous || note.AuthorID == viewerID {
		return note
	}
	out := *note
	out.AuthorID = ""
	return &out
}

// publicNote is the copy of a note broadcast to every subscriber
func publicNote(note *domain.Note) *domain.Note {
	out := *redactNote(note, "")
	out.LikedByMe = false
	return &out
}
