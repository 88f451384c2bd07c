package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamsalmon/transponder/internal/models"
)

type mockMemoRepo struct {
	inserted *models.Memo
	memos    []models.Memo
	deleted  int
	err      error
}

func (m *mockMemoRepo) Insert(ctx context.Context, memo *models.Memo) error {
	if m.err != nil {
		return m.err
	}
	memo.Idx = len(m.memos) + 1
	m.inserted = memo
	return nil
}
func (m *mockMemoRepo) List(ctx context.Context) ([]models.Memo, error) {
	return m.memos, m.err
}
func (m *mockMemoRepo) DeleteByIndex(ctx context.Context, idx int) error {
	m.deleted = idx
	return m.err
}

func TestMemoCreate_ParsesDate(t *testing.T) {
	repo := &mockMemoRepo{}
	svc := NewMemoService(repo)

	// Single-digit month and day, the loose form the page submits.
	err := svc.Create(context.Background(), "buy milk", "2026-9-1")
	require.NoError(t, err)
	require.NotNil(t, repo.inserted)
	assert.Equal(t, "buy milk", repo.inserted.Text)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), repo.inserted.Date)
}

func TestMemoCreate_PaddedDate(t *testing.T) {
	repo := &mockMemoRepo{}
	svc := NewMemoService(repo)

	err := svc.Create(context.Background(), "padded", "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), repo.inserted.Date)
}

func TestMemoCreate_InvalidDate(t *testing.T) {
	repo := &mockMemoRepo{}
	svc := NewMemoService(repo)

	for _, bad := range []string{"", "not-a-date", "2026-13-40", "9-1"} {
		err := svc.Create(context.Background(), "oops", bad)
		var vErr *models.ValidationError
		require.True(t, errors.As(err, &vErr), "date %q should be rejected, got %v", bad, err)
		assert.Nil(t, repo.inserted)
	}
}

func TestMemoList_DisplayDates(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	repo := &mockMemoRepo{memos: []models.Memo{
		{Idx: 1, Text: "past", Date: now.AddDate(0, 0, -10)},
		{Idx: 2, Text: "yesterday", Date: now.AddDate(0, 0, -1)},
		{Idx: 3, Text: "today", Date: now},
		{Idx: 4, Text: "tomorrow", Date: now.AddDate(0, 0, 1)},
		{Idx: 5, Text: "future", Date: now.AddDate(0, 0, 14)},
	}}
	svc := NewMemoService(repo)
	svc.now = func() time.Time { return now }

	memos, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, memos, 5)

	assert.Equal(t, "1 week ago", memos[0].DispDate)
	assert.Equal(t, "Yesterday", memos[1].DispDate)
	assert.Equal(t, "Today", memos[2].DispDate)
	assert.Equal(t, "Tomorrow", memos[3].DispDate)
	assert.Equal(t, "2 weeks from now", memos[4].DispDate)
}

func TestMemoDelete(t *testing.T) {
	repo := &mockMemoRepo{}
	svc := NewMemoService(repo)

	require.NoError(t, svc.Delete(context.Background(), 7))
	assert.Equal(t, 7, repo.deleted)
}

func TestMemoDelete_NotFound(t *testing.T) {
	repo := &mockMemoRepo{err: models.ErrNotFound}
	svc := NewMemoService(repo)

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
