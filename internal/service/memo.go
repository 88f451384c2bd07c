// Package service provides business logic for dated memos,
// delegating persistence to a MemoRepository.
package service

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/teamsalmon/transponder/internal/models"
)

// memoDateLayout accepts YYYY-M-D with or without zero padding,
// the format the client script has always submitted.
const memoDateLayout = "2006-1-2"

// MemoRepository defines the persistence operations needed by the
// MemoService.
type MemoRepository interface {
	// Insert stores a new memo and assigns its unique index.
	Insert(ctx context.Context, memo *models.Memo) error
	// List fetches all memos in ascending date order.
	List(ctx context.Context) ([]models.Memo, error)
	// DeleteByIndex removes the memo with the given index, or
	// models.ErrNotFound.
	DeleteByIndex(ctx context.Context, idx int) error
}

// MemoService implements memo creation, listing, and deletion.
type MemoService struct {
	repo MemoRepository

	// now is stubbed in tests to pin the display dates.
	now func() time.Time
}

// NewMemoService constructs a MemoService with the provided repository.
func NewMemoService(repo MemoRepository) *MemoService {
	return &MemoService{repo: repo, now: time.Now}
}

// Create validates the date and stores a new memo. The memo's index is
// assigned by the repository as one past the current maximum.
func (s *MemoService) Create(ctx context.Context, contents, date string) error {
	parsed, err := time.Parse(memoDateLayout, date)
	if err != nil {
		return &models.ValidationError{Field: "date", Reason: "not a good time"}
	}
	return s.repo.Insert(ctx, &models.Memo{Text: contents, Date: parsed})
}

// List returns all memos date-ascending, each with its display date
// filled in.
func (s *MemoService) List(ctx context.Context) ([]models.Memo, error) {
	memos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range memos {
		memos[i].DispDate = s.displayDate(memos[i].Date)
	}
	return memos, nil
}

// Delete removes the memo with the given index.
func (s *MemoService) Delete(ctx context.Context, idx int) error {
	return s.repo.DeleteByIndex(ctx, idx)
}

// displayDate renders a memo date for display: "Today", "Tomorrow",
// and "Yesterday" are special-cased, everything else is a humanized
// relative time ("3 days ago", "2 weeks from now").
func (s *MemoService) displayDate(date time.Time) string {
	today := dateOnly(s.now())
	day := dateOnly(date)

	switch day.Sub(today) {
	case 0:
		return "Today"
	case 24 * time.Hour:
		return "Tomorrow"
	case -24 * time.Hour:
		return "Yesterday"
	}
	return humanize.RelTime(day, today, "ago", "from now")
}

// dateOnly drops the time-of-day and zone so calendar days compare
// exactly.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
