// Command shadow_compare replays read endpoints against the legacy
// gradebook backend and this service and diffs the responses. Server
// stamped timestamp fields are scrubbed before comparison since the two
// backends set them independently. Any critical endpoint that differs
// exits non-zero so the check can gate a cutover.
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
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type endpoint struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type manifest struct {
	Endpoints []endpoint `json:"targets"`
	// ScrubKeys extends the built-in scrub set per manifest.
	ScrubKeys []string `json:"scrub_keys"`
}

type outcome struct {
	Endpoint      endpoint
	GoStatus      int
	LegacyStatus  int
	GoDuration    time.Duration
	LegacyDuration time.Duration
	StatusMatch   bool
	BodyMatch     bool
	Err           error
}

// differ compares one endpoint across the two backends.
type differ struct {
	client     *http.Client
	goBase     string
	legacyBase string
	scrubKeys  map[string]struct{}
}

func newDiffer(client *http.Client, goBase, legacyBase string, extraKeys []string) *differ {
	scrub := map[string]struct{}{
		"created_at": {},
		"updated_at": {},
		"grade_date": {},
	}
	for _, k := range extraKeys {
		if k = strings.TrimSpace(k); k != "" {
			scrub[k] = struct{}{}
		}
	}
	return &differ{client: client, goBase: goBase, legacyBase: legacyBase, scrubKeys: scrub}
}

func main() {
	var (
		goBase       string
		legacyBase   string
		manifestPath string
		timeout      time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:8000", "Legacy API base URL")
	flag.StringVar(&manifestPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "Path to the endpoint manifest")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	m, err := loadManifest(manifestPath)
	if err != nil {
		log.Fatalf("failed to load manifest: %v", err)
	}

	d := newDiffer(&http.Client{Timeout: timeout}, goBase, legacyBase, m.ScrubKeys)

	breaking, optional := 0, 0
	outcomes := make([]outcome, 0, len(m.Endpoints))
	for _, ep := range m.Endpoints {
		out := d.compare(ep)
		if out.Err != nil || !out.StatusMatch || !out.BodyMatch {
			if ep.Critical {
				breaking++
			} else {
				optional++
			}
		}
		outcomes = append(outcomes, out)
	}

	report(outcomes)
	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if len(m.Endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints defined in %s", path)
	}
	return &m, nil
}

func (d *differ) compare(ep endpoint) outcome {
	out := outcome{Endpoint: ep}

	goStatus, goBody, goDur, err := d.fetch(d.goBase, ep)
	if err != nil {
		out.Err = fmt.Errorf("go request failed: %w", err)
		return out
	}
	legacyStatus, legacyBody, legacyDur, err := d.fetch(d.legacyBase, ep)
	if err != nil {
		out.Err = fmt.Errorf("legacy request failed: %w", err)
		return out
	}

	out.GoStatus = goStatus
	out.LegacyStatus = legacyStatus
	out.GoDuration = goDur
	out.LegacyDuration = legacyDur
	out.StatusMatch = goStatus == legacyStatus
	out.BodyMatch = d.equalBodies(goBody, legacyBody)
	return out
}

func (d *differ) fetch(base string, ep endpoint) (int, []byte, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(ep.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := ep.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// equalBodies compares raw bytes first and falls back to a structural
// JSON comparison with volatile fields scrubbed and integral floats
// normalised (the legacy backend serialises whole numbers as floats).
func (d *differ) equalBodies(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	d.scrub(&aj)
	d.scrub(&bj)
	return reflect.DeepEqual(aj, bj)
}

func (d *differ) scrub(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k := range d.scrubKeys {
			delete(val, k)
		}
		for k, v2 := range val {
			d.scrub(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			d.scrub(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func report(outcomes []outcome) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, out := range outcomes {
		status := "OK"
		switch {
		case out.Err != nil:
			status = "ERROR"
		case !out.StatusMatch || !out.BodyMatch:
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, out.Endpoint.Method, out.Endpoint.Path)
		if out.Err != nil {
			fmt.Printf("  Error: %v\n", out.Err)
			continue
		}
		fmt.Printf("  Go %d (%s) | Legacy %d (%s)\n", out.GoStatus, out.GoDuration, out.LegacyStatus, out.LegacyDuration)
		fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", out.StatusMatch, out.BodyMatch, out.Endpoint.Critical)
	}
}
