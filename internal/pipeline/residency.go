package pipeline

import "strings"

var (
	saHints = map[string]struct{}{
		"sa": {}, "saudi": {}, "saudi arabia": {}, "ksa": {},
	}
	aeHints = map[string]struct{}{
		"ae": {}, "uae": {}, "united arab emirates": {}, "dubai": {}, "abudhabi": {}, "abu dhabi": {},
	}
)

// ResidencyTag maps the event's region/country hint to a two-letter
// jurisdiction tag, falling back to the configured default.
func ResidencyTag(evt Event, defaultTag string) string {
	hint := evt.Region
	if hint == "" {
		hint = evt.Country
	}
	hint = strings.ToLower(strings.TrimSpace(hint))
	if _, ok := saHints[hint]; ok {
		return "SA"
	}
	if _, ok := aeHints[hint]; ok {
		return "AE"
	}
	return defaultTag
}
