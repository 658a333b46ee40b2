package dramabox

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/layarproject/layar/internal/domain"
)

const relatedLimit = 12

// Related suggests dramas similar to ref. Candidates are pulled from the
// trending, latest, and for-you lists concurrently, deduplicated by bookId
// (first occurrence wins, in that list order), scored by tag overlap with
// ref, and trimmed to the top 12. A ref without tags skips scoring.
func (c *Client) Related(ctx context.Context, ref domain.Drama) ([]domain.Drama, error) {
	lists := c.gather(ctx,
		func(ctx context.Context) ([]domain.Drama, error) { return c.Trending(ctx, 1) },
		func(ctx context.Context) ([]domain.Drama, error) { return c.Latest(ctx, 1) },
		func(ctx context.Context) ([]domain.Drama, error) { return c.ForYou(ctx, 1) },
	)

	var all []domain.Drama
	for _, list := range lists {
		all = append(all, list...)
	}

	candidates := dedupeDramas(all, ref.BookID)
	ranked := rankByTags(candidates, ref.Tags)
	if len(ranked) > relatedLimit {
		ranked = ranked[:relatedLimit]
	}
	return ranked, nil
}

// ByTag returns dramas whose tags contain the given tag, case-insensitive.
// The API has no tag endpoint, so candidates come from four list endpoints.
func (c *Client) ByTag(ctx context.Context, tag string) ([]domain.Drama, error) {
	lists := c.gather(ctx,
		func(ctx context.Context) ([]domain.Drama, error) { return c.Trending(ctx, 1) },
		func(ctx context.Context) ([]domain.Drama, error) { return c.Latest(ctx, 1) },
		func(ctx context.Context) ([]domain.Drama, error) { return c.ForYou(ctx, 1) },
		func(ctx context.Context) ([]domain.Drama, error) { return c.Random(ctx) },
	)

	var all []domain.Drama
	for _, list := range lists {
		all = append(all, list...)
	}

	lowerTag := strings.ToLower(tag)
	var matched []domain.Drama
	for _, drama := range dedupeDramas(all, "") {
		for _, t := range drama.Tags {
			if strings.Contains(strings.ToLower(t), lowerTag) {
				matched = append(matched, drama)
				break
			}
		}
	}

	c.logger.Debug("dramabox by tag", "tag", tag, "matched", len(matched))
	return matched, nil
}

// gather runs list fetches concurrently, preserving argument order in the
// result so downstream deduplication stays deterministic. Individual failures
// degrade to an empty slot.
func (c *Client) gather(ctx context.Context, fetches ...func(context.Context) ([]domain.Drama, error)) [][]domain.Drama {
	lists := make([][]domain.Drama, len(fetches))
	var wg sync.WaitGroup
	for i, fn := range fetches {
		i, fn := i, fn
		wg.Add(1)
		go func() {
			defer wg.Done()
			dramas, err := fn(ctx)
			if err != nil {
				c.logger.Warn("related source fetch failed", "error", err)
				return
			}
			lists[i] = dramas
		}()
	}
	wg.Wait()
	return lists
}

// dedupeDramas keeps the first occurrence of each bookId, dropping excludeID.
func dedupeDramas(dramas []domain.Drama, excludeID string) []domain.Drama {
	seen := make(map[string]bool, len(dramas))
	unique := make([]domain.Drama, 0, len(dramas))
	for _, d := range dramas {
		if d.BookID == excludeID || seen[d.BookID] {
			continue
		}
		seen[d.BookID] = true
		unique = append(unique, d)
	}
	return unique
}

// tagScore counts how many reference tags overlap a candidate's tags.
// Matching is case-insensitive, bidirectional substring containment: tag A
// matches tag B if either contains the other.
func tagScore(refTags, tags []string) int {
	score := 0
	for _, ref := range refTags {
		lowerRef := strings.ToLower(ref)
		for _, t := range tags {
			lowerTag := strings.ToLower(t)
			if strings.Contains(lowerTag, lowerRef) || strings.Contains(lowerRef, lowerTag) {
				score++
				break
			}
		}
	}
	return score
}

// rankByTags orders candidates by descending tag score, preserving the
// original relative order among equals. Without reference tags the candidate
// order is returned as-is.
func rankByTags(candidates []domain.Drama, refTags []string) []domain.Drama {
	if len(refTags) == 0 {
		return candidates
	}

	scores := make([]int, len(candidates))
	for i, d := range candidates {
		scores[i] = tagScore(refTags, d.Tags)
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	ranked := make([]domain.Drama, len(candidates))
	for i, idx := range order {
		ranked[i] = candidates[idx]
	}
	return ranked
}
