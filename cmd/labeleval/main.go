// Command labeleval measures the pipeline's false-dismissal rate against a
// hand-labelled sample. First run writes a labels.csv template from the
// recent-events feed; after editing keep/drop labels, re-running scores how
// many analyst-kept events the pipeline filed as noise.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type recentEvent struct {
	ID             int64  `json:"id"`
	IncidentID     int64  `json:"incident_id"`
	EventType      string `json:"event_type"`
	IncidentStatus string `json:"incident_status"`
	Redacted       string `json:"redacted"`
}

type eventEvidence struct {
	EventID    int64 `json:"event_id"`
	IncidentID int64 `json:"incident_id"`
}

type incidentDetail struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

var client = &http.Client{Timeout: 5 * time.Second}

func getJSON(url string, dest any) error {
	res, err := client.Get(url)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dest)
}

func initLabels(api, path string, n int) error {
	var events []recentEvent
	if err := getJSON(fmt.Sprintf("%s/events/recent?limit=%d", api, n), &events); err != nil {
		return fmt.Errorf("fetch recent events: %w", err)
	}

	lines := []string{
		"# labels.csv format: event_id, keep_or_drop",
		"# use 'keep' for truly actionable events, 'drop' for noise/duplicates",
		"# you can add comments starting with # anywhere",
		"# --- recent events to label below ---",
	}
	for _, ev := range events {
		red := strings.ReplaceAll(ev.Redacted, "\n", " ")
		if len(red) > 140 {
			red = red[:140]
		}
		lines = append(lines,
			fmt.Sprintf("# id=%d status=%s type=%s redacted=%q", ev.ID, ev.IncidentStatus, ev.EventType, red),
			fmt.Sprintf("%d,drop", ev.ID),
		)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return err
	}
	fmt.Printf("[init] Wrote template with %d events to %s. Edit and re-run.\n", len(events), path)
	return nil
}

func loadLabels(path string) (map[int64]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.Comment = '#'

	labels := make(map[int64]bool)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 2 {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil {
			continue
		}
		tag := strings.ToLower(strings.TrimSpace(row[1]))
		if tag != "keep" && tag != "drop" {
			continue
		}
		labels[id] = tag == "keep"
	}
	return labels, nil
}

func main() {
	api := "http://127.0.0.1:8080"
	labelsPath := "labels.csv"
	if len(os.Args) > 1 {
		api = strings.TrimRight(os.Args[1], "/")
	}
	if len(os.Args) > 2 {
		labelsPath = os.Args[2]
	}

	if _, err := os.Stat(labelsPath); os.IsNotExist(err) {
		if err := initLabels(api, labelsPath, 30); err != nil {
			fmt.Printf("[error] %s not found and could not initialize from API: %v\n", labelsPath, err)
			os.Exit(2)
		}
		return
	}

	labels, err := loadLabels(labelsPath)
	if err != nil {
		fmt.Printf("[error] reading %s: %v\n", labelsPath, err)
		os.Exit(1)
	}
	if len(labels) == 0 {
		fmt.Printf("[warn] No labels found in %s.\n", labelsPath)
		os.Exit(1)
	}

	misses, kept := 0, 0
	for id, shouldKeep := range labels {
		if !shouldKeep {
			continue
		}
		var ev eventEvidence
		if err := getJSON(fmt.Sprintf("%s/evidence/%d", api, id), &ev); err != nil || ev.IncidentID == 0 {
			continue
		}
		var inc incidentDetail
		if err := getJSON(fmt.Sprintf("%s/incidents/%d", api, ev.IncidentID), &inc); err != nil {
			continue
		}
		kept++
		if inc.Status == "noise" {
			misses++
		}
	}

	rate := 0.0
	if kept > 0 {
		rate = float64(misses) / float64(kept)
	}
	fmt.Printf("{\"kept\": %d, \"missed\": %d, \"false_dismissal_rate\": %g}\n",
		kept, misses, math.Round(rate*1000)/1000)
}
