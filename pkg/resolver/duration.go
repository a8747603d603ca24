package resolver

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DurationParser turns a human-written running time into a duration. A
// parser reports false when the input is not in the form it understands;
// the next parser in the chain gets a try.
type DurationParser interface {
	Parse(raw string) (time.Duration, bool)
}

// ClockDurationParser reads "H:MM:SS" clock notation.
type ClockDurationParser struct{}

func (ClockDurationParser) Parse(raw string) (time.Duration, bool) {
	t, err := time.Parse("15:04:05", raw)
	if err != nil {
		return 0, false
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, true
}

// frenchDuration reads spelled-out French running times such as
// "2 heures 8 minutes" or "1 heure 52 minutes 30 secondes". Minutes are
// the one part every such notation carries.
var frenchDuration = regexp.MustCompile(
	`^\s*(?:(?P<H>\d+)\s+heures?\s+)?(?P<M>\d+)\s+minutes?(?:\s+(?P<S>\d+)\s+secondes?)?\s*$`,
)

// FrenchDurationParser reads spelled-out French running times.
type FrenchDurationParser struct{}

func (FrenchDurationParser) Parse(raw string) (time.Duration, bool) {
	m := frenchDuration.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}

	var d time.Duration
	for i, name := range frenchDuration.SubexpNames() {
		if m[i] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i])
		if err != nil {
			continue
		}
		switch name {
		case "H":
			d += time.Duration(n) * time.Hour
		case "M":
			d += time.Duration(n) * time.Minute
		case "S":
			d += time.Duration(n) * time.Second
		}
	}
	return d, true
}

// parseDuration runs raw through the parser chain and returns the first
// hit.
func parseDuration(raw string, parsers []DurationParser) (time.Duration, bool) {
	for _, p := range parsers {
		if d, ok := p.Parse(raw); ok {
			return d, true
		}
	}
	return 0, false
}

// formatDuration renders a duration in the canonical "HH:MM:SS" form
// every stored entity uses.
func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
