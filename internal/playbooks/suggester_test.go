package playbooks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arc-self/soc-triage/internal/playbooks"
)

func TestSuggestActions(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		wantFirst string
	}{
		{"auth failure", "auth_failure", "Check recent password change for the user."},
		{"login keyword", "failed_login", "Check recent password change for the user."},
		{"case insensitive", "AUTH_SUCCESS", "Check recent password change for the user."},
		{"port scan", "port_scan", "Block offending IP at edge firewall."},
		{"nmap keyword", "nmap_sweep", "Block offending IP at edge firewall."},
		{"unknown type", "disk_full", "Review logs and validate if benign."},
		{"empty type", "", "Review logs and validate if benign."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := playbooks.SuggestActions(tt.eventType)
			assert.Len(t, actions, 3)
			assert.Equal(t, tt.wantFirst, actions[0])
		})
	}
}
