// Command smoke drives a running timetable-api instance through the full
// scheduling flow and exits non-zero on the first mismatch. Meant for
// post-deploy verification; it resets the instance it targets.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type step struct {
	Name       string
	Method     string
	Path       string
	Body       string
	WantStatus int
	Check      func(body []byte) error
}

func main() {
	var (
		base    string
		prefix  string
		timeout time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&prefix, "prefix", "/api/v1", "API route prefix")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	steps := []step{
		{Name: "reset", Method: http.MethodPost, Path: "/reset", WantStatus: http.StatusNoContent},
		{Name: "start selection", Method: http.MethodPost, Path: "/selection",
			Body:       `{"name":"Smoke Faculty","subject":"Smoke","hours":"2","room":"S1"}`,
			WantStatus: http.StatusCreated},
		{Name: "toggle Mon-1", Method: http.MethodPost, Path: "/selection/slots/Mon-1", WantStatus: http.StatusOK},
		{Name: "toggle Tue-2", Method: http.MethodPost, Path: "/selection/slots/Tue-2", WantStatus: http.StatusOK},
		{Name: "commit", Method: http.MethodPost, Path: "/selection/commit", WantStatus: http.StatusCreated,
			Check: fieldEquals("name", "Smoke Faculty")},
		{Name: "faculties", Method: http.MethodGet, Path: "/faculties", WantStatus: http.StatusOK},
		{Name: "grid", Method: http.MethodGet, Path: "/timetable/grid", WantStatus: http.StatusOK,
			Check: gridCellState("Mon-1", "occupied")},
		{Name: "conflicts", Method: http.MethodGet, Path: "/conflicts", WantStatus: http.StatusOK},
		{Name: "generate", Method: http.MethodPost, Path: "/generate", WantStatus: http.StatusOK},
		{Name: "snapshot export", Method: http.MethodGet, Path: "/snapshot", WantStatus: http.StatusOK},
		{Name: "csv export", Method: http.MethodGet, Path: "/timetable/export?format=csv", WantStatus: http.StatusOK},
		{Name: "final reset", Method: http.MethodPost, Path: "/reset", WantStatus: http.StatusNoContent},
	}

	failures := 0
	for _, s := range steps {
		if err := run(client, base, prefix, s); err != nil {
			failures++
			fmt.Printf("FAIL %-18s %v\n", s.Name, err)
			continue
		}
		fmt.Printf("ok   %s\n", s.Name)
	}

	if failures > 0 {
		log.Printf("%d step(s) failed", failures)
		os.Exit(1)
	}
}

func run(client *http.Client, base, prefix string, s step) error {
	url := strings.TrimRight(base, "/") + prefix + s.Path

	var body io.Reader
	if s.Body != "" {
		body = bytes.NewBufferString(s.Body)
	}
	req, err := http.NewRequest(s.Method, url, body)
	if err != nil {
		return err
	}
	if s.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != s.WantStatus {
		return fmt.Errorf("status %d, want %d: %s", resp.StatusCode, s.WantStatus, strings.TrimSpace(string(raw)))
	}
	if s.Check != nil {
		return s.Check(raw)
	}
	return nil
}

func decodeData(body []byte) (map[string]interface{}, error) {
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return envelope.Data, nil
}

func fieldEquals(field, want string) func([]byte) error {
	return func(body []byte) error {
		data, err := decodeData(body)
		if err != nil {
			return err
		}
		if got, _ := data[field].(string); got != want {
			return fmt.Errorf("%s = %q, want %q", field, got, want)
		}
		return nil
	}
}

func gridCellState(slot, want string) func([]byte) error {
	return func(body []byte) error {
		data, err := decodeData(body)
		if err != nil {
			return err
		}
		cells, _ := data["cells"].(map[string]interface{})
		cell, _ := cells[slot].(map[string]interface{})
		if got, _ := cell["state"].(string); got != want {
			return fmt.Errorf("cell %s state = %q, want %q", slot, got, want)
		}
		return nil
	}
}
