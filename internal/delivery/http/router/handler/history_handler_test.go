package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"larder/internal/domain/entity"
	"larder/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHistoryUsecase struct {
	gotFilter repository.HistoryFilter
	entries   []*entity.HistoryEntry
	cleared   bool
}

func (s *stubHistoryUsecase) List(_ context.Context, filter repository.HistoryFilter) ([]*entity.HistoryEntry, error) {
	s.gotFilter = filter

	return s.entries, nil
}

func (s *stubHistoryUsecase) ClearHistory(_ context.Context) error {
	s.cleared = true

	return nil
}

func newHistoryTestContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHistoryHandler_List_PassesFilter(t *testing.T) {
	uc := &stubHistoryUsecase{entries: []*entity.HistoryEntry{{
		Timestamp:   time.Now(),
		Action:      entity.ActionAdded,
		Item:        "Milk",
		Category:    entity.CategoryDairy,
		Quantity:    2,
		StorageUnit: "Fridge",
	}}}
	h := NewHistoryHandler(uc, discardLogger())

	c, rec := newHistoryTestContext("/api/history?since_days=7&action=added&category=dairy")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, uc.gotFilter.SinceDays)
	assert.Equal(t, entity.ActionAdded, uc.gotFilter.Action)
	assert.Equal(t, entity.CategoryDairy, uc.gotFilter.Category)

	var body struct {
		Success bool              `json:"success"`
		Data    []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 1)
}

func TestHistoryHandler_List_RejectsBadQuery(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "negative since_days", target: "/api/history?since_days=-1"},
		{name: "non-numeric since_days", target: "/api/history?since_days=abc"},
		{name: "unknown action", target: "/api/history?action=eaten"},
		{name: "unknown category", target: "/api/history?category=gadgets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistoryHandler(&stubHistoryUsecase{}, discardLogger())

			c, rec := newHistoryTestContext(tt.target)
			require.NoError(t, h.List(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHistoryHandler_Clear(t *testing.T) {
	uc := &stubHistoryUsecase{}
	h := NewHistoryHandler(uc, discardLogger())

	c, rec := newHistoryTestContext("/admin/history")
	require.NoError(t, h.Clear(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.cleared)
}
