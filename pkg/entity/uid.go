package entity

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/cinepedia/scraper/pkg/common"
)

// SanitizeUID normalizes an identifier so it is safe for every storage
// backend: casefolded, quotes stripped, and every character outside
// [a-z0-9_-] removed. Sanitizing an already-sanitized string is a no-op,
// which keeps uid re-validation idempotent across store/load cycles.
func SanitizeUID(value string) string {
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, `"`, "")
	value = strings.ReplaceAll(value, "'", "")

	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z',
			r >= '0' && r <= '9',
			r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DeriveEntityUID computes the stable root uid for a page.
//
// When the page carries an external source id, the uid is derived from the
// entity type and that id, so re-processing the same page always lands on
// the same identity. A preset uid is only re-sanitized, never replaced.
// Having neither is a construction error.
func DeriveEntityUID(base common.BaseInfo) (string, error) {
	if base.SourceID != "" {
		entityType := base.EntityType
		if entityType == "" {
			entityType = "woa"
		}
		raw := fmt.Sprintf("%s_%s", entityType, base.SourceID)
		raw = strings.ReplaceAll(raw, " ", "_")
		return SanitizeUID(raw), nil
	}
	if base.UID != "" {
		return SanitizeUID(base.UID), nil
	}
	return "", fmt.Errorf("%w: %q", ErrMissingIdentity, base.Title)
}

// AssignUID derives and sets the uid of a freshly built component, exactly
// once. Singleton components land on "{parent}_{kind}" so two extractions
// of the same component for the same parent always collide on the same
// identity, regardless of which extractor produced them or in which order.
// List-item components add a content-derived suffix so distinct items never
// collide.
func AssignUID(c Component) {
	m := c.Meta()
	if m.UID != "" {
		return
	}

	raw := m.ParentUID + "_" + c.Kind()
	if keyed, ok := c.(identityKeyed); ok {
		if suffix := keyed.identityKey(); suffix != "" {
			raw += "_" + suffix
		}
	}
	m.UID = SanitizeUID(strings.ReplaceAll(raw, " ", "_"))
}

// identityKeyed is implemented by list-item components whose identity is
// derived from their own content rather than from their kind alone.
type identityKeyed interface {
	identityKey() string
}

// contentHash produces a short stable digest of a set of member strings,
// insensitive to their order.
func contentHash(members ...[]string) string {
	var all []string
	for _, m := range members {
		all = append(all, m...)
	}
	sort.Strings(all)

	h := fnv.New32a()
	for _, s := range all {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(s))))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%08x", h.Sum32())
}
