package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultBucketSeconds is the clustering window width when
// CLUSTER_BUCKET_SECONDS is not configured.
const DefaultBucketSeconds = 900

var (
	userTokenRE  = regexp.MustCompile(`\buser (\S+)`)
	dottedQuadRE = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	fromTokenRE  = regexp.MustCompile(`\bfrom (\S+)`)
)

// Window describes the time bucket a cluster key was derived from.
type Window struct {
	BucketSeconds  int    `json:"bucket_seconds"`
	BucketIndex    int64  `json:"bucket_index"`
	WindowStartISO string `json:"window_start_iso"`
	WindowEndISO   string `json:"window_end_iso"`
}

// Explanation is the human-facing account of why an event clustered where it
// did: the extracted feature tokens plus the time window. No state is read
// or written deriving it.
type Explanation struct {
	Tokens map[string]string `json:"tokens"`
	Window Window            `json:"window"`
}

// ClusterKey derives the stable deduplication key for an event: the SHA-256
// of "event_type|user|ip|bucket", truncated to 16 hex characters. The
// normalized text supplies fallback user/ip tokens when the event carries
// none; now supplies the bucket when ts is absent or unparseable.
func ClusterKey(evt Event, normalized string, now time.Time, bucketSeconds int) (string, Explanation) {
	if bucketSeconds <= 0 {
		bucketSeconds = DefaultBucketSeconds
	}

	et := strings.ToLower(evt.EventType)
	user := strings.ToLower(evt.User)
	if user == "" {
		if m := userTokenRE.FindStringSubmatch(normalized); m != nil {
			user = m[1]
		}
	}
	ip := strings.ToLower(evt.IP)
	if ip == "" {
		ip = dottedQuadRE.FindString(normalized)
	}
	if ip == "" {
		if m := fromTokenRE.FindStringSubmatch(normalized); m != nil {
			ip = m[1]
		}
	}

	bucket := bucketIndex(evt.TS, now, bucketSeconds)

	basis := et + "|" + user + "|" + ip + "|" + strconv.FormatInt(bucket, 10)
	sum := sha256.Sum256([]byte(basis))
	key := hex.EncodeToString(sum[:])[:16]

	start := time.Unix(bucket*int64(bucketSeconds), 0).UTC()
	end := start.Add(time.Duration(bucketSeconds) * time.Second)

	return key, Explanation{
		Tokens: map[string]string{
			"event_type":  et,
			"user":        user,
			"ip":          ip,
			"time_bucket": strconv.FormatInt(bucket, 10),
		},
		Window: Window{
			BucketSeconds:  bucketSeconds,
			BucketIndex:    bucket,
			WindowStartISO: start.Format(time.RFC3339),
			WindowEndISO:   end.Format(time.RFC3339),
		},
	}
}

// bucketIndex parses the event timestamp (RFC3339, or a bare ISO datetime
// taken as UTC) and floors it into a fixed-width bucket. Absent or
// unparseable timestamps fall back to the ingest wall clock.
func bucketIndex(ts string, now time.Time, bucketSeconds int) int64 {
	t := now
	if s := strings.TrimSpace(ts); s != "" {
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			t = parsed
		} else if parsed, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
			t = parsed.UTC()
		}
	}
	return t.Unix() / int64(bucketSeconds)
}
