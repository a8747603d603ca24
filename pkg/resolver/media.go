package resolver

import (
	"strings"

	"github.com/cinepedia/scraper/pkg/common"
)

// collectMedia gathers every media item attached to the page sections,
// deduplicated by source URL. Section order decides which occurrence wins.
func collectMedia(sections []*common.Section) []common.Media {
	var out []common.Media
	seen := map[string]struct{}{}
	for _, section := range flattenSections(sections) {
		for _, m := range section.Media {
			if m.Src == "" {
				continue
			}
			if _, dup := seen[m.Src]; dup {
				continue
			}
			seen[m.Src] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}

func isPoster(m common.Media) bool {
	if strings.EqualFold(m.MediaType, "poster") {
		return true
	}
	return strings.Contains(strings.ToLower(m.Src), "affiche")
}

func isTrailer(m common.Media) bool {
	return strings.EqualFold(m.MediaType, "trailer") ||
		strings.EqualFold(m.MediaType, "video")
}

func isPortrait(m common.Media) bool {
	if strings.EqualFold(m.MediaType, "portrait") {
		return true
	}
	return strings.Contains(strings.ToLower(m.Src), "portrait")
}
