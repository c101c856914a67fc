package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// Normalize collapses an event into the single lowercase string used as the
// clustering substrate and stored as evidence. It concatenates the non-empty
// values of message, action, status and event_type in that fixed order; if
// all four are empty the whole event is stringified instead. The caller must
// redact the message before normalizing; sentinels are part of the
// normalized text.
func Normalize(evt Event) string {
	parts := make([]string, 0, 4)
	for _, v := range []string{evt.Message, evt.Action, evt.Status, evt.EventType} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	msg := strings.Join(parts, " ")
	if len(parts) == 0 {
		msg = fmt.Sprintf("%+v", evt)
	}
	msg = strings.ToLower(msg)
	msg = whitespaceRE.ReplaceAllString(msg, " ")
	return strings.TrimSpace(msg)
}
