package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNoteStyleKnown(t *testing.T) {
	tests := []struct {
		style NoteStyle
		want  bool
	}{
		{NoteStyleClassic, true},
		{NoteStyleSpiral, true},
		{NoteStyleTorn, true},
		{NoteStyleSticky, true},
		{NoteStylePolaroid, true},
		{NoteStyleCurved, true},
		{NoteStyleFolded, true},
		{"neon", false},
		{"", false},
		{"Classic", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			if got := tt.style.Known(); got != tt.want {
				t.Errorf("Known() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNoteFiltersOffset(t *testing.T) {
	tests := []struct {
		name    string
		filters NoteFilters
		want    int
	}{
		{"first page", NoteFilters{Page: 1, Limit: 20}, 0},
		{"third page", NoteFilters{Page: 3, Limit: 20}, 40},
		{"zero page treated as first", NoteFilters{Page: 0, Limit: 20}, 0},
		{"small limit", NoteFilters{Page: 4, Limit: 1}, 3},
		{"page past the cap is clamped", NoteFilters{Page: 922337203685477580, Limit: 20}, (MaxPage - 1) * 20},
		{"zero limit", NoteFilters{Page: 3, Limit: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPaginatedHasMore(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		want  bool
	}{
		{"empty", 1, 20, 0, false},
		{"exactly one page", 1, 20, 20, false},
		{"one extra", 1, 20, 21, true},
		{"last page", 2, 10, 15, false},
		{"page beyond total", 5, 10, 15, false},
		{"huge page does not wrap", 922337203685477580, 50, 100, false},
		{"zero limit", 1, 0, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := PaginatedNotes{Page: tt.page, Limit: tt.limit, Total: tt.total}
			if got := notes.HasMore(); got != tt.want {
				t.Errorf("PaginatedNotes.HasMore() = %v, want %v", got, tt.want)
			}
			comments := PaginatedComments{Page: tt.page, Limit: tt.limit, Total: tt.total}
			if got := comments.HasMore(); got != tt.want {
				t.Errorf("PaginatedComments.HasMore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateNoteDataIsEmpty(t *testing.T) {
	content := "edited"
	tilt := decimal.NewFromInt(2)

	if !(&UpdateNoteData{}).IsEmpty() {
		t.Error("Expected zero UpdateNoteData to be empty")
	}
	if (&UpdateNoteData{Content: &content}).IsEmpty() {
		t.Error("Expected content update to be non-empty")
	}
	if (&UpdateNoteData{Tilt: &tilt}).IsEmpty() {
		t.Error("Expected tilt update to be non-empty")
	}
}

func TestTargetTypeIsValid(t *testing.T) {
	tests := []struct {
		target TargetType
		want   bool
	}{
		{TargetTypeNote, true},
		{TargetTypeComment, true},
		{"user", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			if got := tt.target.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultUserSettings(t *testing.T) {
	settings := DefaultUserSettings("auth0|alice")
	if settings.UserID != "auth0|alice" {
		t.Errorf("Expected user ID auth0|alice, got %s", settings.UserID)
	}
	if settings.Anonymous {
		t.Error("Expected Anonymous to default to false")
	}
	if !settings.AllowComments {
		t.Error("Expected AllowComments to default to true")
	}
}

func TestNoteErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"note not found", ErrNoteNotFound, "note not found"},
		{"comment not found", ErrCommentNotFound, "comment not found"},
		{"comments disabled", ErrCommentsDisabled, "comments are disabled on this note"},
		{"target not found", ErrTargetNotFound, "target not found"},
		{"view already recorded", ErrViewAlreadyRecorded, "view already recorded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("error message = %q, want %q", tt.err.Error(), tt.expected)
			}
		})
	}
}
