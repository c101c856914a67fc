// Command seed waits for the API to come up, then posts a small demo batch.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type logEvent struct {
	Source    string `json:"source,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Message   string `json:"message"`
	TS        string `json:"ts,omitempty"`
}

type ingestPayload struct {
	Events []logEvent `json:"events"`
}

func waitForHealth(api string, maxWait time.Duration) bool {
	client := &http.Client{Timeout: 1500 * time.Millisecond}
	deadline := time.Now().Add(maxWait)
	delay := 500 * time.Millisecond
	for time.Now().Before(deadline) {
		res, err := client.Get(api + "/health")
		if err == nil {
			res.Body.Close()
			if res.StatusCode < 300 {
				return true
			}
		}
		time.Sleep(delay)
		delay = delay * 3 / 2
		if delay > 2500*time.Millisecond {
			delay = 2500 * time.Millisecond
		}
	}
	return false
}

func main() {
	api := os.Getenv("API_URL")
	if api == "" {
		api = "http://127.0.0.1:8080"
	}
	api = strings.TrimRight(api, "/")

	if !waitForHealth(api, 15*time.Second) {
		fmt.Fprintf(os.Stderr, "[seed] API not reachable at %s. Start the API first.\n", api)
		os.Exit(2)
	}

	payload := ingestPayload{Events: []logEvent{
		{
			Source:    "seed",
			EventType: "auth_success",
			Message:   "Successful login for user alice@example.com from 203.0.113.10",
			TS:        "2025-08-22T10:00:00Z",
		},
		{
			Source:    "seed",
			EventType: "auth_failure",
			Message:   "Failed login for user bob@example.com from 198.51.100.23",
			TS:        "2025-08-22T10:00:05Z",
		},
	}}

	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[seed] Marshal failed: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	res, err := client.Post(api+"/ingest/logs", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "[seed] Request failed: %v\n", err)
		os.Exit(1)
	}
	defer res.Body.Close()

	text, _ := io.ReadAll(res.Body)
	fmt.Println(res.StatusCode, string(text))
	if res.StatusCode >= 400 {
		os.Exit(1)
	}
}
