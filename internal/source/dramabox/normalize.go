package dramabox

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/layarproject/layar/internal/domain"
)

// coverAliases are the field names the drama API uses for cover art,
// in priority order. The /randomdrama endpoint uses bookCover.
var coverAliases = []string{
	"coverWap", "bookCover", "cover", "coverImage",
	"poster", "image", "img", "chapterImg",
}

// normalizeList extracts drama records from whatever shape the API returned.
// It never fails: unrecognized shapes yield an empty list. Shapes are probed
// in priority order: top-level array, .data array, .data.list array, .list
// array, .data single object, bare object carrying bookId.
func normalizeList(raw []byte) []domain.Drama {
	items := extractItems(raw)
	dramas := make([]domain.Drama, 0, len(items))
	for _, item := range items {
		dramas = append(dramas, normalizeItem(item))
	}
	return dramas
}

func extractItems(raw []byte) []map[string]any {
	var top any
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil
	}

	switch v := top.(type) {
	case []any:
		return toMaps(v)
	case map[string]any:
		data := v["data"]
		if arr, ok := data.([]any); ok {
			return toMaps(arr)
		}
		if obj, ok := data.(map[string]any); ok {
			if list, ok := obj["list"].([]any); ok {
				return toMaps(list)
			}
		}
		if list, ok := v["list"].([]any); ok {
			return toMaps(list)
		}
		if obj, ok := data.(map[string]any); ok {
			return []map[string]any{obj}
		}
		if _, ok := v["bookId"]; ok {
			return []map[string]any{v}
		}
	}
	return nil
}

func toMaps(items []any) []map[string]any {
	maps := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			maps = append(maps, m)
		}
	}
	return maps
}

// normalizeItem reconciles one raw item into a Drama. Every field gets a
// type-appropriate zero value when no alias matches; Cover in particular is
// always a string so callers can rely on its presence.
func normalizeItem(m map[string]any) domain.Drama {
	name := firstString(m, "bookName", "title", "name")
	cover := firstString(m, coverAliases...)

	bookID := firstString(m, "bookId", "id")
	if bookID == "" {
		bookID = synthesizeID(name, cover)
	}
	if name == "" {
		name = "Unknown"
	}

	return domain.Drama{
		BookID:       bookID,
		BookName:     name,
		Cover:        cover,
		ChapterCount: firstInt(m, "chapterCount", "totalChapterNum", "episodeCount", "chapters"),
		Introduction: firstString(m, "introduction"),
		Protagonist:  firstString(m, "protagonist"),
		Tags:         stringSlice(m["tags"]),
		Rank:         rankOf(m["rankVo"]),
	}
}

// synthesizeID derives a stable identifier for items missing a natural key,
// hashing name+cover so the same logical item keys identically across
// re-fetches. Items with nothing hashable get a random UUID.
func synthesizeID(name, cover string) string {
	if name == "" && cover == "" {
		return uuid.NewString()
	}
	hash := sha256.Sum256([]byte(name + "|" + cover))
	return hex.EncodeToString(hash[:6])
}

// firstString returns the first non-empty string value among keys. Numeric
// values are stringified, since some endpoints return numeric ids.
func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// firstInt returns the first usable numeric value among keys, accepting both
// JSON numbers and numeric strings.
func firstInt(m map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			if v != 0 {
				return int(v)
			}
		case string:
			if n, err := strconv.Atoi(v); err == nil && n != 0 {
				return n
			}
		}
	}
	return 0
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

func rankOf(v any) *domain.DramaRank {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	rank := &domain.DramaRank{}
	if t, ok := m["rankType"].(float64); ok {
		rank.Type = int(t)
	}
	if code, ok := m["hotCode"].(string); ok {
		rank.HotCode = code
	}
	if s, ok := m["sort"].(float64); ok {
		rank.Sort = int(s)
	}
	return rank
}
