package dramabox

import (
	"encoding/json"
	"sort"

	"github.com/layarproject/layar/internal/domain"
)

// Episode wire shapes. chapterId arrives as either a string or a number
// depending on the endpoint revision, so it is decoded leniently.

type videoPathItem struct {
	Quality   int    `json:"quality"`
	VideoPath string `json:"videoPath"`
	IsDefault int    `json:"isDefault"`
}

type cdnEntry struct {
	CdnCode       string          `json:"cdnCode"`
	VideoPathList []videoPathItem `json:"videoPathList"`
	IsDefault     int             `json:"isDefault"`
}

type episodeWire struct {
	ChapterID    json.Number `json:"chapterId"`
	ChapterIndex int         `json:"chapterIndex"`
	ChapterName  string      `json:"chapterName"`
	ChapterImg   string      `json:"chapterImg"`
	CdnList      []cdnEntry  `json:"cdnList"`

	// Alternative flat shape without a CDN list
	VideoPath string `json:"videoPath"`
	VideoURL  string `json:"videoUrl"`
}

// episodeEnvelope covers the nested shapes of the all-episodes endpoint.
type episodeEnvelope struct {
	Data        json.RawMessage `json:"data"`
	List        []episodeWire   `json:"list"`
	ChapterList []episodeWire   `json:"chapterList"`
}

// parseEpisodes extracts the episode list from any of the known response
// shapes: bare array, .data array, .data.list, .list, .data.chapterList,
// .chapterList. Unrecognized shapes yield an empty list.
func parseEpisodes(raw []byte) []domain.DramaEpisode {
	var episodes []episodeWire
	if err := json.Unmarshal(raw, &episodes); err == nil {
		return mapEpisodes(episodes)
	}

	var env episodeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return []domain.DramaEpisode{}
	}

	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &episodes); err == nil && len(episodes) > 0 {
			return mapEpisodes(episodes)
		}
		var nested episodeEnvelope
		if err := json.Unmarshal(env.Data, &nested); err == nil {
			if len(nested.List) > 0 {
				return mapEpisodes(nested.List)
			}
			if len(nested.ChapterList) > 0 {
				return mapEpisodes(nested.ChapterList)
			}
		}
	}
	if len(env.List) > 0 {
		return mapEpisodes(env.List)
	}
	return mapEpisodes(env.ChapterList)
}

func mapEpisodes(wires []episodeWire) []domain.DramaEpisode {
	episodes := make([]domain.DramaEpisode, 0, len(wires))
	for _, w := range wires {
		direct := w.VideoPath
		if direct == "" {
			direct = w.VideoURL
		}
		cdns := make([]domain.CDN, 0, len(w.CdnList))
		for _, c := range w.CdnList {
			videos := make([]domain.VideoPath, 0, len(c.VideoPathList))
			for _, v := range c.VideoPathList {
				videos = append(videos, domain.VideoPath{
					Quality: v.Quality,
					Path:    v.VideoPath,
					Default: v.IsDefault == 1,
				})
			}
			cdns = append(cdns, domain.CDN{
				Code:    c.CdnCode,
				Default: c.IsDefault == 1,
				Videos:  videos,
			})
		}
		episodes = append(episodes, domain.DramaEpisode{
			ChapterID:    w.ChapterID.String(),
			ChapterIndex: w.ChapterIndex,
			ChapterName:  w.ChapterName,
			ChapterImg:   w.ChapterImg,
			CDNs:         cdns,
			DirectURL:    direct,
		})
	}
	return episodes
}

// VideoURL resolves the playable URL for an episode: the default-flagged CDN
// entry (else the first), then its default-flagged path (else the highest
// quality, else the first). Episodes without a CDN list fall back to their
// direct URL field. An empty string means unavailable; callers must not
// attempt playback.
func VideoURL(ep domain.DramaEpisode) string {
	if len(ep.CDNs) == 0 {
		return ep.DirectURL
	}

	cdn := ep.CDNs[0]
	for _, c := range ep.CDNs {
		if c.Default {
			cdn = c
			break
		}
	}

	if len(cdn.Videos) == 0 {
		return ""
	}
	for _, v := range cdn.Videos {
		if v.Default {
			return v.Path
		}
	}

	videos := make([]domain.VideoPath, len(cdn.Videos))
	copy(videos, cdn.Videos)
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].Quality > videos[j].Quality
	})
	return videos[0].Path
}
