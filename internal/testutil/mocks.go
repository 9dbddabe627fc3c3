package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/notewall/notewall-backend/internal/domain"
)

type likeKey struct {
	userID     string
	targetID   string
	targetType domain.TargetType
}

type viewKey struct {
	userID string
	noteID string
}

// MockStore is an in-memory backing store shared by the mock repositories,
// so counters, likedByMe and cascades behave like the database.
type MockStore struct {
	mu       sync.Mutex
	notes    map[string]*domain.Note
	comments map[string]*domain.Comment
	likes    map[likeKey]time.Time
	views    map[viewKey]time.Time
	reports  []*domain.Report
	settings map[string]*domain.UserSettings

	// Err, when set, is returned by every repository call
	Err error

	Notes    *MockNoteRepository
	Comments *MockCommentRepository
	Likes    *MockLikeRepository
	Views    *MockViewRepository
	Reports  *MockReportRepository
	Settings *MockSettingsRepository
}

// NewMockStore creates an empty MockStore with its repositories
func NewMockStore() *MockStore {
	s := &MockStore{
		notes:    make(map[string]*domain.Note),
		comments: make(map[string]*domain.Comment),
		likes:    make(map[likeKey]time.Time),
		views:    make(map[viewKey]time.Time),
		settings: make(map[string]*domain.UserSettings),
	}
	s.Notes = &MockNoteRepository{s: s}
	s.Comments = &MockCommentRepository{s: s}
	s.Likes = &MockLikeRepository{s: s}
	s.Views = &MockViewRepository{s: s}
	s.Reports = &MockReportRepository{s: s}
	s.Settings = &MockSettingsRepository{s: s}
	return s
}

// AddNote stores a note as-is, filling ID and timestamps when empty
func (s *MockStore) AddNote(note *domain.Note) *domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
		note.UpdatedAt = note.CreatedAt
	}
	stored := *note
	s.notes[note.ID] = &stored
	return note
}

// AddComment stores a comment as-is, filling ID and timestamp when empty
func (s *MockStore) AddComment(comment *domain.Comment) *domain.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	stored := *comment
	s.comments[comment.ID] = &stored
	return comment
}

// ViewCount returns the number of stored views for a note
func (s *MockStore) ViewCount(noteID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.views {
		if k.noteID == noteID {
			n++
		}
	}
	return n
}

// LikeCount returns the number of stored likes on any target
func (s *MockStore) LikeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.likes)
}

// NoteCount returns the number of stored notes
func (s *MockStore) NoteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// CommentCount returns the number of stored comments
func (s *MockStore) CommentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}

// ReportsFor returns the stored reports on a target
func (s *MockStore) ReportsFor(targetID string) []*domain.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Report
	for _, r := range s.reports {
		if r.TargetID == targetID {
			out = append(out, r)
		}
	}
	return out
}

// helpers below expect s.mu to be held

func (s *MockStore) likeCount(targetID string, targetType domain.TargetType) int64 {
	var n int64
	for k := range s.likes {
		if k.targetID == targetID && k.targetType == targetType {
			n++
		}
	}
	return n
}

func (s *MockStore) settingsFor(userID string) *domain.UserSettings {
	if st, ok := s.settings[userID]; ok {
		return st
	}
	return domain.DefaultUserSettings(userID)
}

func (s *MockStore) hydrateNote(n *domain.Note, viewerID string) *domain.Note {
	out := *n
	out.AuthorAnonymous = s.settingsFor(n.AuthorID).Anonymous
	out.LikeCount = s.likeCount(n.ID, domain.TargetTypeNote)
	out.CommentCount = 0
	for _, c := range s.comments {
		if c.NoteID == n.ID {
			out.CommentCount++
		}
	}
	out.ViewCount = 0
	for k := range s.views {
		if k.noteID == n.ID {
			out.ViewCount++
		}
	}
	_, out.LikedByMe = s.likes[likeKey{viewerID, n.ID, domain.TargetTypeNote}]
	return &out
}

func (s *MockStore) hydrateComment(c *domain.Comment, viewerID string) *domain.Comment {
	out := *c
	out.AuthorAnonymous = s.settingsFor(c.AuthorID).Anonymous
	out.LikeCount = s.likeCount(c.ID, domain.TargetTypeComment)
	_, out.LikedByMe = s.likes[likeKey{viewerID, c.ID, domain.TargetTypeComment}]
	return &out
}

func (s *MockStore) dropTarget(targetID string, targetType domain.TargetType) {
	for k := range s.likes {
		if k.targetID == targetID && k.targetType == targetType {
			delete(s.likes, k)
		}
	}
	kept := s.reports[:0]
	for _, r := range s.reports {
		if !(r.TargetID == targetID && r.TargetType == targetType) {
			kept = append(kept, r)
		}
	}
	s.reports = kept
}

// MockNoteRepository is a mock implementation of domain.NoteRepository
type MockNoteRepository struct {
	s *MockStore
}

// Create stores a new note
func (m *MockNoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	created := *note
	created.ID = ""
	created.CreatedAt = time.Time{}
	return m.s.AddNote(&created), nil
}

// GetByID retrieves a note by ID
func (m *MockNoteRepository) GetByID(ctx context.Context, id string, viewerID string) (*domain.Note, error) {
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	note, ok := m.s.notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	return m.s.hydrateNote(note, viewerID), nil
}

// List returns a page of notes. Every sort falls back to newest first
// with popular ordering by like count.
func (m *MockNoteRepository) List(ctx context.Context, filters *domain.NoteFilters) (*domain.PaginatedNotes, error) {
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	all := make([]*domain.Note, 0, len(m.s.notes))
	for _, n := range m.s.notes {
		all = append(all, m.s.hydrateNote(n, filters.ViewerID))
	}
	sort.SliceStable(all, func(i, j int) bool {
		if filters.Sort == domain.NoteSortPopular && all[i].LikeCount != all[j].LikeCount {
			return all[i].LikeCount > all[j].LikeCount
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	start := filters.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + filters.Limit
	if end > len(all) {
		end = len(all)
	}

	return &domain.PaginatedNotes{
		Items: all[start:end],
		Page:  filters.Page,
		Limit: filters.Limit,
		Total: int64(len(all)),
	}, nil
}

// Update applies the non-nil fields
func (m *MockNoteRepository) Update(ctx context.Context, id string, data *domain.UpdateNoteData) (*domain.Note, error) {
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	note, ok := m.s.notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	if data.Content != nil {
		note.Content = *data.Content
	}
	if data.BackgroundColor != nil {
		note.BackgroundColor = *data.BackgroundColor
	}
	if data.NoteStyle != nil {
		note.NoteStyle = *data.NoteStyle
	}
	if data.ClipType != nil {
		note.ClipType = *data.ClipType
	}
	if data.Tilt != nil {
		note.Tilt = *data.Tilt
	}
	if data.SelectedFont != nil {
		note.SelectedFont = *data.SelectedFont
	}
	note.UpdatedAt = time.Now()
	return m.s.hydrateNote(note, ""), nil
}

// Delete removes a note with its comments, views, likes and reports
func (m *MockNoteRepository) Delete(ctx context.Context, id string) error {
	if m.s.Err != nil {
		return m.s.Err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.notes[id]; !ok {
		return domain.ErrNoteNotFound
	}
	for cid, c := range m.s.comments {
		if c.NoteID == id {
			m.s.dropTarget(cid, domain.TargetTypeComment)
			delete(m.s.comments, cid)
		}
	}
	for k := range m.s.views {
		if k.noteID == id {
			delete(m.s.views, k)
		}
	}
	m.s.dropTarget(id, domain.TargetTypeNote)
	delete(m.s.notes, id)
	return nil
}

// MockCommentRepository is a mock implementation of domain.CommentRepository
type MockCommentRepository struct {
	s *MockStore
}

// Create stores a comment on an existing note
func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	m.s.mu.Lock()
	_, ok := m.s.notes[comment.NoteID]
	m.s.mu.Unlock()
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	created := *comment
	created.ID = ""
	created.CreatedAt = time.Time{}
	return m.s.AddComment(&created), nil
}

// GetByID retrieves a comment by ID
func (m *MockCommentRepository) GetByID(ctx context.Context, id string, viewerID string) (*domain.Comment, error) {
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	c, ok := m.s.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return m.s.hydrateComment(c, viewerID), nil
}

// ListByNote returns a page of comments, oldest first
func (m *MockCommentRepository) ListByNote(ctx context.Context, noteID string, viewerID string, page, limit int) (*domain.PaginatedComments, error) {
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var all []*domain.Comment
	for _, c := range m.s.comments {
		if c.NoteID == noteID {
			all = append(all, m.s.hydrateComment(c, viewerID))
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })

	start := domain.PageOffset(page, limit)
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return &domain.PaginatedComments{
		Items: append([]*domain.Comment{}, all[start:end]...),
		Page:  page,
		Limit: limit,
		Total: int64(len(all)),
	}, nil
}

// Delete removes a comment with its likes and reports
func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	if m.s.Err != nil {
		return m.s.Err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	m.s.dropTarget(id, domain.TargetTypeComment)
	delete(m.s.comments, id)
	return nil
}

// MockLikeRepository is a mock implementation of domain.LikeRepository
type MockLikeRepository struct {
	s *MockStore
}

// Toggle flips the like atomically under the store lock
func (m *MockLikeRepository) Toggle(ctx context.Context, userID, targetID string, targetType domain.TargetType) (*domain.LikeResult, error) {
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	key := likeKey{userID, targetID, targetType}
	_, liked := m.s.likes[key]
	if liked {
		delete(m.s.likes, key)
	} else {
		m.s.likes[key] = time.Now()
	}
	return &domain.LikeResult{
		TargetID:   targetID,
		TargetType: targetType,
		Liked:      !liked,
		LikeCount:  m.s.likeCount(targetID, targetType),
	}, nil
}

// MockViewRepository is a mock implementation of domain.ViewRepository.
// It enforces (user, note) uniqueness atomically like the primary key does.
type MockViewRepository struct {
	s *MockStore
}

// Record inserts a view unless the pair exists
func (m *MockViewRepository) Record(ctx context.Context, userID, noteID string) (*domain.View, error) {
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.notes[noteID]; !ok {
		return nil, domain.ErrNoteNotFound
	}
	key := viewKey{userID, noteID}
	if _, ok := m.s.views[key]; ok {
		return nil, domain.ErrViewAlreadyRecorded
	}
	now := time.Now()
	m.s.views[key] = now
	return &domain.View{UserID: userID, NoteID: noteID, CreatedAt: now}, nil
}

// CountByNote returns the number of views on a note
func (m *MockViewRepository) CountByNote(ctx context.Context, noteID string) (int64, error) {
	if m.s.Err != nil {
		return 0, m.s.Err
	}
	return int64(m.s.ViewCount(noteID)), nil
}

// MockReportRepository is a mock implementation of domain.ReportRepository
type MockReportRepository struct {
	s *MockStore
}

// Create appends a report
func (m *MockReportRepository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	created := *report
	created.ID = uuid.New().String()
	created.CreatedAt = time.Now()
	m.s.reports = append(m.s.reports, &created)
	return &created, nil
}

// MockSettingsRepository is a mock implementation of domain.SettingsRepository
type MockSettingsRepository struct {
	s *MockStore
}

// Get returns stored settings or the defaults
func (m *MockSettingsRepository) Get(ctx context.Context, userID string) (*domain.UserSettings, error) {
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := *m.s.settingsFor(userID)
	return &out, nil
}

// Upsert applies the non-nil fields
func (m *MockSettingsRepository) Upsert(ctx context.Context, userID string, data *domain.UpdateSettingsData) (*domain.UserSettings, error) {
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	current := *m.s.settingsFor(userID)
	if data.Anonymous != nil {
		current.Anonymous = *data.Anonymous
	}
	if data.AllowComments != nil {
		current.AllowComments = *data.AllowComments
	}
	current.UpdatedAt = time.Now()
	m.s.settings[userID] = &current
	out := current
	return &out, nil
}
