// Package pipeline implements the deterministic ingest transformations:
// PII redaction, event normalization, residency tagging, clustering and
// incident summarization. Every function here is pure: no persistence,
// no clock reads beyond what the caller passes in.
package pipeline

import "regexp"

// Redaction kinds, in application order. CARD is greedy over digit runs, so
// IP must run before PHONE and CARD must run last or an address like
// 192.168.1.22 gets swallowed by the card matcher.
const (
	KindEmail = "EMAIL"
	KindIP    = "IP"
	KindPhone = "PHONE"
	KindCard  = "CARD"
)

type redactionRule struct {
	Kind     string
	Pattern  *regexp.Regexp
	Sentinel string
}

var redactionRules = []redactionRule{
	{KindEmail, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[REDACTED:EMAIL]"},
	{KindIP, regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`), "[REDACTED:IP]"},
	{KindPhone, regexp.MustCompile(`\b(?:\+?\d{1,2}[ -]?)?(?:\(\d{3}\)|\d{3})[ -]?\d{3}[ -]?\d{4}\b`), "[REDACTED:PHONE]"},
	{KindCard, regexp.MustCompile(`\b\d(?:[ -]?\d){12,15}\b`), "[REDACTED:CARD]"},
}

var sentinelPatterns = map[string]*regexp.Regexp{
	KindEmail: regexp.MustCompile(`\[REDACTED:EMAIL\]`),
	KindIP:    regexp.MustCompile(`\[REDACTED:IP\]`),
	KindPhone: regexp.MustCompile(`\[REDACTED:PHONE\]`),
	KindCard:  regexp.MustCompile(`\[REDACTED:CARD\]`),
}

// Redact replaces PII substrings with stable sentinels and returns the
// redacted text plus the total number of substitutions. Redaction never
// fails; empty input yields ("", 0).
func Redact(text string) (string, int) {
	red, byKind := RedactDetailed(text)
	total := 0
	for _, n := range byKind {
		total += n
	}
	return red, total
}

// RedactDetailed is Redact with a per-kind substitution count map. Kinds with
// zero substitutions are omitted.
func RedactDetailed(text string) (string, map[string]int) {
	red := text
	byKind := make(map[string]int, len(redactionRules))
	for _, rule := range redactionRules {
		matches := rule.Pattern.FindAllStringIndex(red, -1)
		if len(matches) == 0 {
			continue
		}
		byKind[rule.Kind] += len(matches)
		red = rule.Pattern.ReplaceAllString(red, rule.Sentinel)
	}
	return red, byKind
}

// SentinelCounts counts redaction sentinels per kind in already-redacted
// text. The evidence view aggregates these to verify that stored samples
// carry sentinels rather than raw PII.
func SentinelCounts(redacted string) map[string]int {
	counts := make(map[string]int, len(sentinelPatterns))
	for kind, pat := range sentinelPatterns {
		if n := len(pat.FindAllStringIndex(redacted, -1)); n > 0 {
			counts[kind] = n
		}
	}
	return counts
}
