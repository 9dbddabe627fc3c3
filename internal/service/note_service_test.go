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

func sampleCreateNote() dto.CreateNote {
	return dto.CreateNote{
		Content:         "Hello wall",
		BackgroundColor: "#FFEE88",
		NoteStyle:       "classic",
		ClipType:        "pin",
		Tilt:            decimal.RequireFromString("1.5"),
		SelectedFont:    "caveat",
	}
}

func TestCreateNote_Success(t *testing.T) {
	store := testutil.NewMockStore()
	events := testutil.NewMockEventPublisher()
	svc := NewNoteService(store.Notes)
	svc.SetEventPublisher(events)

	note, err := svc.CreateNote(context.Background(), "auth0|alice", sampleCreateNote())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if note.ID == "" {
		t.Error("expected generated id")
	}
	if note.AuthorID != "auth0|alice" {
		t.Errorf("expected author auth0|alice, got %s", note.AuthorID)
	}
	if note.LikeCount != 0 || note.CommentCount != 0 || note.ViewCount != 0 {
		t.Errorf("expected zero aggregates, got %d/%d/%d", note.LikeCount, note.CommentCount, note.ViewCount)
	}
	if got := events.Types(); len(got) != 1 || got[0] != "note.created" {
		t.Errorf("expected one note.created event, got %v", got)
	}
}

func TestCreateNote_AnonymousAuthorHiddenInBroadcast(t *testing.T) {
	store := testutil.NewMockStore()
	events := testutil.NewMockEventPublisher()
	anon := true
	store.Settings.Upsert(context.Background(), "auth0|alice", &domain.UpdateSettingsData{Anonymous: &anon})

	svc := NewNoteService(store.Notes)
	svc.SetEventPublisher(events)

	note, err := svc.CreateNote(context.Background(), "auth0|alice", sampleCreateNote())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if note.AuthorID != "auth0|alice" {
		t.Errorf("author should see themselves, got %q", note.AuthorID)
	}

	broadcast := events.Events()[0].Event.Payload.(*domain.Note)
	if broadcast.AuthorID != "" {
		t.Errorf("expected hidden author in broadcast, got %q", broadcast.AuthorID)
	}
}

func TestGetNote_RedactsAnonymousAuthor(t *testing.T) {
	store := testutil.NewMockStore()
	anon := true
	store.Settings.Upsert(context.Background(), "auth0|alice", &domain.UpdateSettingsData{Anonymous: &anon})
	note := store.AddNote(&domain.Note{AuthorID: "auth0|alice", Content: "secret admirer"})

	svc := NewNoteService(store.Notes)

	got, err := svc.GetNote(context.Background(), "auth0|bob", note.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.AuthorID != "" {
		t.Errorf("expected author hidden from other viewers, got %q", got.AuthorID)
	}

	own, err := svc.GetNote(context.Background(), "auth0|alice", note.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if own.AuthorID != "auth0|alice" {
		t.Errorf("expected author visible to themselves, got %q", own.AuthorID)
	}
}

func TestGetNote_NotFound(t *testing.T) {
	svc := NewNoteService(testutil.NewMockStore().Notes)

	_, err := svc.GetNote(context.Background(), "", "missing")
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestListNotes_Pagination(t *testing.T) {
	store := testutil.NewMockStore()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		store.AddNote(&domain.Note{AuthorID: "auth0|alice", CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}
	svc := NewNoteService(store.Notes)

	page, err := svc.ListNotes(context.Background(), "", dto.ListNotesQuery{Page: 1, Limit: 20, Sort: "recent"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(page.Items) != 20 {
		t.Errorf("expected 20 items, got %d", len(page.Items))
	}
	if page.Total != 25 || !page.HasMore() {
		t.Errorf("expected total 25 with more pages, got %d hasMore=%v", page.Total, page.HasMore())
	}
	if !page.Items[0].CreatedAt.After(page.Items[1].CreatedAt) {
		t.Error("expected newest first")
	}

	page, err = svc.ListNotes(context.Background(), "", dto.ListNotesQuery{Page: 2, Limit: 20, Sort: "recent"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(page.Items) != 5 || page.HasMore() {
		t.Errorf("expected last page of 5, got %d hasMore=%v", len(page.Items), page.HasMore())
	}
}

func TestUpdateNote_OnlyAuthor(t *testing.T) {
	store := testutil.NewMockStore()
	note := store.AddNote(&domain.Note{AuthorID: "auth0|alice", Content: "before"})
	events := testutil.NewMockEventPublisher()
	svc := NewNoteService(store.Notes)
	svc.SetEventPublisher(events)

	content := "after"
	_, err := svc.UpdateNote(context.Background(), "auth0|bob", note.ID, dto.UpdateNoteRequest{Content: &content})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := svc.UpdateNote(context.Background(), "auth0|alice", note.ID, dto.UpdateNoteRequest{Content: &content})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Content != "after" {
		t.Errorf("expected content 'after', got %q", updated.Content)
	}
	if got := events.Types(); len(got) != 1 || got[0] != "note.updated" {
		t.Errorf("expected one note.updated event, got %v", got)
	}
}

func TestUpdateNote_EmptyUpdateIsNoop(t *testing.T) {
	store := testutil.NewMockStore()
	note := store.AddNote(&domain.Note{AuthorID: "auth0|alice", Content: "same"})
	events := testutil.NewMockEventPublisher()
	svc := NewNoteService(store.Notes)
	svc.SetEventPublisher(events)

	got, err := svc.UpdateNote(context.Background(), "auth0|alice", note.ID, dto.UpdateNoteRequest{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Content != "same" {
		t.Errorf("expected unchanged content, got %q", got.Content)
	}
	if len(events.Events()) != 0 {
		t.Errorf("expected no events, got %v", events.Types())
	}
}

func TestDeleteNote_Cascades(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMockStore()
	note := store.AddNote(&domain.Note{AuthorID: "auth0|alice"})
	comment := store.AddComment(&domain.Comment{NoteID: note.ID, AuthorID: "auth0|bob"})
	store.Likes.Toggle(ctx, "auth0|bob", note.ID, domain.TargetTypeNote)
	store.Likes.Toggle(ctx, "auth0|alice", comment.ID, domain.TargetTypeComment)
	store.Views.Record(ctx, "auth0|bob", note.ID)
	store.Reports.Create(ctx, &domain.Report{ReporterID: "auth0|carol", TargetID: comment.ID, TargetType: domain.TargetTypeComment})

	svc := NewNoteService(store.Notes)

	if err := svc.DeleteNote(ctx, "auth0|bob", note.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-author, got %v", err)
	}
	if err := svc.DeleteNote(ctx, "auth0|alice", note.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if store.CommentCount() != 0 {
		t.Errorf("expected comments removed, got %d", store.CommentCount())
	}
	if store.LikeCount() != 0 {
		t.Errorf("expected likes removed, got %d", store.LikeCount())
	}
	if store.ViewCount(note.ID) != 0 {
		t.Errorf("expected views removed, got %d", store.ViewCount(note.ID))
	}
	if len(store.ReportsFor(comment.ID)) != 0 {
		t.Error("expected reports on comments removed")
	}
	if _, err := store.Notes.GetByID(ctx, note.ID, ""); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound after delete, got %v", err)
	}
}
