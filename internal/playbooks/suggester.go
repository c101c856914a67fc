// Package playbooks maps event types to canned response actions. The lookup
// is keyword-based on the event type; anything unrecognized falls back to a
// generic triage playbook.
package playbooks

import "strings"

var playbooks = map[string][]string{
	"auth_failure": {
		"Check recent password change for the user.",
		"Review MFA enrollment and recent device logins.",
		"Temporarily lock account after threshold breaches.",
	},
	"port_scan": {
		"Block offending IP at edge firewall.",
		"Run quick vuln scan on targeted subnet.",
		"Open incident with NOC for monitoring.",
	},
	"default": {
		"Review logs and validate if benign.",
		"Add to allowlist/blocklist as needed.",
		"Document in ticket and close or escalate.",
	},
}

// SuggestActions returns the playbook for the given event type.
func SuggestActions(eventType string) []string {
	et := strings.ToLower(eventType)
	switch {
	case strings.Contains(et, "auth"), strings.Contains(et, "login"):
		return playbooks["auth_failure"]
	case strings.Contains(et, "scan"), strings.Contains(et, "nmap"):
		return playbooks["port_scan"]
	default:
		return playbooks["default"]
	}
}
