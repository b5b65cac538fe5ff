package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/johnwards/oppscore/internal/recommend"
	"github.com/johnwards/oppscore/internal/testhelpers"
)

// selectiveGenerator fails for prompts mentioning a poisoned name.
type selectiveGenerator struct{}

func (selectiveGenerator) Generate(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "Name: Poisoned") {
		return "", errors.New("quota exceeded")
	}
	return " Follow up tomorrow. ", nil
}

func newTestServer(t *testing.T, gen recommend.Generator) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newHandler(recommend.New(gen), time.Second))
	t.Cleanup(srv.Close)
	return srv
}

// doRequest makes an HTTP request to the test server and returns the response.
// The caller is responsible for closing the response body.
func doRequest(t *testing.T, srv *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, bodyReader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// readJSON reads the response body and unmarshals it into a map.
func readJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(b, &result); err != nil {
		t.Fatalf("unmarshal response (status %d): body=%s err=%v", resp.StatusCode, string(b), err)
	}
	return result
}

// postJSON is safe to call from goroutines other than the test's own. On
// failure it returns a zero status and nil body.
func postJSON(srv *httptest.Server, path string, body any) (int, map[string]any) {
	b, err := json.Marshal(body)
	if err != nil {
		return 0, nil
	}
	resp, err := srv.Client().Post(srv.URL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		return 0, nil
	}
	defer func() { _ = resp.Body.Close() }()

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return resp.StatusCode, nil
	}
	return resp.StatusCode, result
}

func opportunity(name string) map[string]any {
	return map[string]any{
		"Name":          name,
		"Stage":         "Prospecting",
		"Notes":         "Client approved budget, ready to buy",
		"Email":         3,
		"Call":          5,
		"Meeting":       1,
		"Days_In_Stage": 10,
	}
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, selectiveGenerator{})

	resp := doRequest(t, srv, http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Correlation-Id") == "" {
		t.Error("missing X-Correlation-Id header")
	}
	body := readJSON(t, resp)
	if body["status"] != "healthy" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	srv := newTestServer(t, selectiveGenerator{})

	resp := doRequest(t, srv, http.MethodGet, "/crm/v3/objects", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	body := readJSON(t, resp)
	if body["category"] != "OBJECT_NOT_FOUND" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestServer_ScoreScenarioA(t *testing.T) {
	srv := newTestServer(t, selectiveGenerator{})

	resp := doRequest(t, srv, http.MethodPost, "/score", opportunity("Acme"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	body := readJSON(t, resp)
	scores, _ := body["scores"].(map[string]any)
	if scores["confidence"] != 78.7 {
		t.Errorf("confidence = %v, want 78.7", scores["confidence"])
	}
	if body["suggestion"] != "Follow up tomorrow." {
		t.Errorf("suggestion = %q", body["suggestion"])
	}
}

func TestServer_GenerationFailureIsIsolated(t *testing.T) {
	srv := newTestServer(t, selectiveGenerator{})

	names := []string{"Acme", "Poisoned", "Globex", "Initech", "Poisoned", "Hooli"}
	codes := make([]int, len(names))
	bodies := make([]map[string]any, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			codes[i], bodies[i] = postJSON(srv, "/score", opportunity(name))
		}(i, name)
	}
	wg.Wait()

	for i, name := range names {
		scores, _ := bodies[i]["scores"].(map[string]any)
		if scores["confidence"] != 78.7 {
			t.Errorf("%s: confidence = %v, want 78.7", name, scores["confidence"])
		}

		if name == "Poisoned" {
			if codes[i] != http.StatusBadGateway {
				t.Errorf("%s: status = %d, want 502", name, codes[i])
			}
			if reason, _ := bodies[i]["generationFailed"].(string); !strings.Contains(reason, "quota exceeded") {
				t.Errorf("%s: generationFailed = %v", name, bodies[i]["generationFailed"])
			}
			continue
		}
		if codes[i] != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", name, codes[i])
		}
	}
}

func TestServer_GenerationTimeout(t *testing.T) {
	gen := &blockingGenerator{}
	srv := httptest.NewServer(newHandler(recommend.New(gen), 20*time.Millisecond))
	t.Cleanup(srv.Close)

	resp := doRequest(t, srv, http.MethodPost, "/score", opportunity("Slow"))
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	body := readJSON(t, resp)
	if reason, _ := body["generationFailed"].(string); !strings.Contains(reason, context.DeadlineExceeded.Error()) {
		t.Errorf("generationFailed = %v", body["generationFailed"])
	}
}

type blockingGenerator struct{}

func (*blockingGenerator) Generate(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestServer_Stages(t *testing.T) {
	srv := newTestServer(t, selectiveGenerator{})

	resp := doRequest(t, srv, http.MethodGet, "/stages", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := readJSON(t, resp)
	results, _ := body["results"].([]any)
	if len(results) != 7 {
		t.Errorf("expected 7 stages, got %d", len(results))
	}
}

func TestScoreCommand_DryRun(t *testing.T) {
	t.Setenv("OPPSCORE_LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(`{"Name":"Globex","Stage":"Negotiation","Notes":"Not interested, no budget this quarter","Email":1,"Call":0,"Meeting":0,"Days_In_Stage":20}`))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"score", "--dry-run", "--env-file", t.TempDir() + "/none.env"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var got scoreOutput
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	if got.Scores.StageDuration != 16.53 || got.Scores.Confidence != 14.86 {
		t.Errorf("unexpected scores: %+v", got.Scores)
	}
	if !strings.Contains(got.Prompt, "Buying Signal: No") {
		t.Errorf("unexpected prompt: %q", got.Prompt)
	}
	if got.Suggestion != "" {
		t.Errorf("dry run produced a suggestion: %q", got.Suggestion)
	}
}

func TestRunScore_GenerationFailureKeepsScores(t *testing.T) {
	cmd := newScoreCmd()
	cmd.SetContext(context.Background())

	rec := recommend.New(&testhelpers.FakeGenerator{Err: errors.New("model offline")})
	out, err := runScore(cmd, rec, testhelpers.ScenarioA(t), false)
	if err != nil {
		t.Fatalf("runScore: %v", err)
	}
	if out.Scores.Activity != 44 {
		t.Errorf("activity = %v, want 44", out.Scores.Activity)
	}
	if !strings.Contains(out.GenerationFailed, "model offline") {
		t.Errorf("generationFailed = %q", out.GenerationFailed)
	}
}

func TestReadOpportunity_Invalid(t *testing.T) {
	_, err := readOpportunity(strings.NewReader(`{"Name":"x","Stage":"","Email":-2}`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"Stage", "Email", "Days_In_Stage"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
