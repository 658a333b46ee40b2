package store

import (
	"log/slog"
	"time"

	"github.com/layarproject/layar/internal/domain"
)

const (
	historyKey      = "watch_history"
	maxHistoryItems = 100
)

// History is the device-local watch history: a most-recent-first list capped
// at 100 entries, keyed by (id, content type). All operations are best-effort;
// a failed or corrupt read is treated as an empty history, never an error.
type History struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewHistory creates a watch history over the given store.
func NewHistory(s Store, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.Default()
	}
	return &History{store: s, logger: logger, now: time.Now}
}

// All returns every history entry, most recent first.
func (h *History) All() []domain.WatchHistoryItem {
	var items []domain.WatchHistoryItem
	if !h.store.Get(historyKey, &items) {
		return []domain.WatchHistoryItem{}
	}
	return items
}

// ByType returns history entries of one content type, most recent first.
func (h *History) ByType(contentType domain.ContentType) []domain.WatchHistoryItem {
	var filtered []domain.WatchHistoryItem
	for _, item := range h.All() {
		if item.Type == contentType {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Add upserts an entry: any existing entry with the same (id, type) is
// removed, the new entry is stamped with the current time and prepended, and
// the list is truncated to the cap. WatchedAt on the passed item is ignored.
func (h *History) Add(item domain.WatchHistoryItem) {
	items := h.All()

	kept := make([]domain.WatchHistoryItem, 0, len(items)+1)
	item.WatchedAt = h.now().UnixMilli()
	kept = append(kept, item)
	for _, existing := range items {
		if existing.ID == item.ID && existing.Type == item.Type {
			continue
		}
		kept = append(kept, existing)
	}

	if len(kept) > maxHistoryItems {
		kept = kept[:maxHistoryItems]
	}

	if err := h.store.Set(historyKey, kept); err != nil {
		h.logger.Error("failed to save watch history", "error", err)
	}
}

// Remove deletes the entry with the given (id, type), if present.
func (h *History) Remove(id string, contentType domain.ContentType) {
	items := h.All()
	kept := make([]domain.WatchHistoryItem, 0, len(items))
	for _, item := range items {
		if item.ID == id && item.Type == contentType {
			continue
		}
		kept = append(kept, item)
	}

	if err := h.store.Set(historyKey, kept); err != nil {
		h.logger.Error("failed to update watch history", "error", err)
	}
}

// Clear deletes the whole history.
func (h *History) Clear() {
	h.store.Delete(historyKey)
}
