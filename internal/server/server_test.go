package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxwire/pkg/diagram"
	"github.com/matzehuels/boxwire/pkg/gesture"
	"github.com/matzehuels/boxwire/pkg/store"
)

const doc = `{"name": "demo", "width": 400, "height": 200, "boxes": [
  {"id": "box", "rect": {"left": "10%", "top": "10%", "width": "25%", "height": "50%"}}
]}`

const drag = `
[[step]]
op = "down"
x = 90
y = 70

[[step]]
op = "move"
x = 130
y = 90

[[step]]
op = "up"
x = 130
y = 90
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	quiet := log.New(io.Discard)
	srv := httptest.NewServer(New(st,
		WithLogger(quiet),
		WithDiagramOptions(diagram.WithLogger(quiet)),
		WithGestureOptions(gesture.WithLogger(quiet)),
	))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string, header ...string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, string(data)
}

func errorCode(t *testing.T, body string) string {
	t.Helper()
	var out struct {
		Error errorBody `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("error body %q: %v", body, err)
	}
	return out.Error.Code
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, body := do(t, "GET", srv.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"status":"ok"`) {
		t.Errorf("GET /healthz = %d %s", resp.StatusCode, body)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Error("missing request id header")
	}

	resp, _ = do(t, "GET", srv.URL+"/healthz", "", requestIDHeader, "abc")
	if got := resp.Header.Get(requestIDHeader); got != "abc" {
		t.Errorf("request id = %q, want echoed abc", got)
	}
}

func TestDiagramCRUD(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL + "/diagrams/demo"

	if resp, body := do(t, "PUT", url, doc); resp.StatusCode != http.StatusCreated {
		t.Fatalf("PUT = %d %s, want 201", resp.StatusCode, body)
	}
	if resp, _ := do(t, "PUT", url, doc); resp.StatusCode != http.StatusOK {
		t.Errorf("PUT again = %d, want 200", resp.StatusCode)
	}

	resp, body := do(t, "GET", url, "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"left": "10%"`) {
		t.Fatalf("GET = %d %s", resp.StatusCode, body)
	}
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("GET without ETag")
	}
	if resp, _ := do(t, "GET", url, "", "If-None-Match", etag); resp.StatusCode != http.StatusNotModified {
		t.Errorf("conditional GET = %d, want 304", resp.StatusCode)
	}

	if _, body := do(t, "GET", srv.URL+"/diagrams", ""); !strings.Contains(body, `"diagrams":["demo"]`) {
		t.Errorf("GET /diagrams = %s", body)
	}

	if resp, _ := do(t, "DELETE", url, ""); resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE = %d, want 204", resp.StatusCode)
	}
	resp, body = do(t, "GET", url, "")
	if resp.StatusCode != http.StatusNotFound || errorCode(t, body) != "DIAGRAM_NOT_FOUND" {
		t.Errorf("GET after delete = %d %s", resp.StatusCode, body)
	}
	if _, body := do(t, "GET", srv.URL+"/diagrams", ""); !strings.Contains(body, `"diagrams":[]`) {
		t.Errorf("GET /diagrams after delete = %s", body)
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name, method, path, body string
		status                   int
		code                     string
	}{
		{"bad json", "PUT", "/diagrams/x", `{`, 400, "INVALID_DIAGRAM"},
		{"bad name", "PUT", "/diagrams/.x", doc, 400, "INVALID_INPUT"},
		{"missing", "GET", "/diagrams/none", "", 404, "DIAGRAM_NOT_FOUND"},
		{"delete missing", "DELETE", "/diagrams/none", "", 404, "DIAGRAM_NOT_FOUND"},
		{"replay missing", "POST", "/diagrams/none/replay", drag, 404, "DIAGRAM_NOT_FOUND"},
		{"bad script", "POST", "/diagrams/none/replay", `[[step]]` + "\nop = \"fly\"", 400, "INVALID_SCRIPT"},
		{"bad format", "GET", "/diagrams/none/render.pdf", "", 400, "INVALID_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, tt.method, srv.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.status, body)
			}
			if got := errorCode(t, body); got != tt.code {
				t.Errorf("code = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestReplay(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL + "/diagrams/demo"
	do(t, "PUT", url, doc)

	resp, body := do(t, "POST", url+"/replay?dry_run=true", drag)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dry replay = %d %s", resp.StatusCode, body)
	}
	var out replayJSON
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatal(err)
	}
	if out.Commits != 1 || out.Saved {
		t.Errorf("dry replay = %+v, want 1 commit, not saved", out)
	}
	if _, body := do(t, "GET", url, ""); !strings.Contains(body, `"left": "10%"`) {
		t.Errorf("dry replay changed the stored diagram: %s", body)
	}

	resp, body = do(t, "POST", url+"/replay", drag)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("replay = %d %s", resp.StatusCode, body)
	}
	out = replayJSON{}
	json.Unmarshal([]byte(body), &out)
	if !out.Saved || out.ETag == "" {
		t.Errorf("replay = %+v, want saved with etag", out)
	}
	last := out.Changes[len(out.Changes)-1]
	if last.Kind != "resize" || last.Phase != "commit" || last.Rect[0] != "20%" {
		t.Errorf("last change = %+v, want resize commit at 20%%", last)
	}
	if _, body := do(t, "GET", url, ""); !strings.Contains(body, `"left": "20%"`) {
		t.Errorf("replay not saved: %s", body)
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)
	do(t, "PUT", srv.URL+"/diagrams/demo", doc)

	resp, body := do(t, "GET", srv.URL+"/diagrams/demo/render.txt", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("render.txt = %d %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if !strings.Contains(body, "+") {
		t.Errorf("render.txt = %q, want a box outline", body)
	}

	resp, body = do(t, "GET", srv.URL+"/diagrams/demo/render.dot", "")
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(body, "digraph") {
		t.Errorf("render.dot = %d %.40s", resp.StatusCode, body)
	}
}
