package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/notewall/notewall-backend/internal/domain"
	"github.com/notewall/notewall-backend/internal/dto"
	"github.com/notewall/notewall-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func sampleCreateComment(content string) dto.CreateComment {
	return dto.CreateComment{
		Content:         content,
		BackgroundColor: "#A1B2C3",
		NoteStyle:       "torn",
		SelectedFont:    "inter",
		Tilt:            decimal.RequireFromString("-2"),
	}
}

func newCommentService(store *testutil.MockStore) *CommentService {
	return NewCommentService(store.Comments, store.Notes, store.Settings)
}

func TestCreateComment_Success(t *testing.T) {
	store := testutil.NewMockStore()
	note := store.AddNote(&domain.Note{AuthorID: "auth0|alice"})
	events := testutil.NewMockEventPublisher()
	svc := newCommentService(store)
	svc.SetEventPublisher(events)

	comment, err := svc.CreateComment(context.Background(), "auth0|bob", note.ID, sampleCreateComment("nice note"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if comment.NoteID != note.ID {
		t.Errorf("expected note id %s, got %s", note.ID, comment.NoteID)
	}

	published := events.Events()
	if len(published) != 1 || published[0].Event.Type != "comment.created" {
		t.Fatalf("expected comment.created, got %v", events.Types())
	}
	if len(published[0].Rooms) != 2 {
		t.Errorf("expected wall and note rooms, got %v", published[0].Rooms)
	}
}

func TestCreateComment_NoteNotFound(t *testing.T) {
	svc := newCommentService(testutil.NewMockStore())

	_, err := svc.CreateComment(context.Background(), "auth0|bob", "missing", sampleCreateComment("hi"))
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestCreateComment_CommentsDisabled(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMockStore()
	note := store.AddNote(&domain.Note{AuthorID: "auth0|alice"})
	off := false
	store.Settings.Upsert(ctx, "auth0|alice", &domain.UpdateSettingsData{AllowComments: &off})
	svc := newCommentService(store)

	_, err := svc.CreateComment(ctx, "auth0|bob", note.ID, sampleCreateComment("hi"))
	if !errors.Is(err, domain.ErrCommentsDisabled) {
		t.Errorf("expected ErrCommentsDisabled, got %v", err)
	}

	// the author can still reply on their own note
	if _, err := svc.CreateComment(ctx, "auth0|alice", note.ID, sampleCreateComment("thanks")); err != nil {
		t.Errorf("expected author comment to succeed, got %v", err)
	}
}

func TestListComments_OldestFirst(t *testing.T) {
	store := testutil.NewMockStore()
	note := store.AddNote(&domain.Note{AuthorID: "auth0|alice"})
	base := time.Now().Add(-time.Hour)
	store.AddComment(&domain.Comment{NoteID: note.ID, Content: "second", CreatedAt: base.Add(time.Minute)})
	store.AddComment(&domain.Comment{NoteID: note.ID, Content: "first", CreatedAt: base})
	svc := newCommentService(store)

	page, err := svc.ListComments(context.Background(), "", note.ID, dto.ListCommentsQuery{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(page.Items))
	}
	if page.Items[0].Content != "first" {
		t.Errorf("expected oldest first, got %q", page.Items[0].Content)
	}
}

func TestDeleteComment_Permissions(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMockStore()
	note := store.AddNote(&domain.Note{AuthorID: "auth0|alice"})
	byBob := store.AddComment(&domain.Comment{NoteID: note.ID, AuthorID: "auth0|bob"})
	byCarol := store.AddComment(&domain.Comment{NoteID: note.ID, AuthorID: "auth0|carol"})
	svc := newCommentService(store)

	if err := svc.DeleteComment(ctx, "auth0|carol", byBob.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for a stranger, got %v", err)
	}
	if err := svc.DeleteComment(ctx, "auth0|bob", byBob.ID); err != nil {
		t.Errorf("expected comment author to delete, got %v", err)
	}
	if err := svc.DeleteComment(ctx, "auth0|alice", byCarol.ID); err != nil {
		t.Errorf("expected note author to delete, got %v", err)
	}
	if store.CommentCount() != 0 {
		t.Errorf("expected no comments left, got %d", store.CommentCount())
	}
}
