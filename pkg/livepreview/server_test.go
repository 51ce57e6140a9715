package livepreview

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/mathlive/pkg/pipeline"
	"github.com/vango-dev/mathlive/pkg/texmath"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Metrics = false
	cfg.Initial = "a+b"
	return cfg
}

func newTestServer(t *testing.T, engine pipeline.Engine, cfg *Config) (*Server, *httptest.Server) {
	t.Helper()
	s := New(engine, cfg)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func getUpdate(t *testing.T, resp *http.Response) Update {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	var u Update
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	return u
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, texmath.New(), testConfig())

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("got %d %q, want 200 ok", resp.StatusCode, body)
	}
}

func TestRenderGet(t *testing.T) {
	_, ts := newTestServer(t, texmath.New(), testConfig())

	resp, err := http.Get(ts.URL + "/render?text=" + url.QueryEscape("a+b"))
	if err != nil {
		t.Fatalf("GET /render: %v", err)
	}
	u := getUpdate(t, resp)
	if !u.OK {
		t.Fatalf("update = %+v, want ok", u)
	}
	if !strings.Contains(u.HTML, "<mi>a</mi><mo>+</mo><mi>b</mi>") {
		t.Errorf("html = %s", u.HTML)
	}
	if u.Message != "" || u.Diagnostic != "" {
		t.Errorf("success carries failure fields: %+v", u)
	}
}

func TestRenderPostFailure(t *testing.T) {
	_, ts := newTestServer(t, texmath.New(), testConfig())

	body := strings.NewReader(`{"text": "\\frac{1}"}`)
	resp, err := http.Post(ts.URL+"/render", "application/json", body)
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	u := getUpdate(t, resp)

	if u.OK {
		t.Fatalf("update = %+v, want failure", u)
	}
	if u.HTML != "" {
		t.Errorf("failure carries html: %q", u.HTML)
	}
	if u.Position != 8 {
		t.Errorf("position = %d, want 8", u.Position)
	}
	if u.Message != `Expected group after '\frac'` {
		t.Errorf("message = %q", u.Message)
	}
	if u.Class != "syntax" {
		t.Errorf("class = %q, want syntax", u.Class)
	}
	if want := "\\frac{1}\n        ^"; u.Diagnostic != want {
		t.Errorf("diagnostic = %q, want %q", u.Diagnostic, want)
	}
}

func TestRenderPreset(t *testing.T) {
	_, ts := newTestServer(t, texmath.New(), testConfig())

	resp, err := http.Get(ts.URL + "/render?preset=inline&text=x")
	if err != nil {
		t.Fatalf("GET /render: %v", err)
	}
	u := getUpdate(t, resp)
	if !strings.Contains(u.HTML, `display="inline"`) {
		t.Errorf("html = %s, want inline math", u.HTML)
	}

	resp, err = http.Get(ts.URL + "/render?preset=huge&text=x")
	if err != nil {
		t.Fatalf("GET /render: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown preset status = %d, want 400", resp.StatusCode)
	}
}

func TestRenderBadBody(t *testing.T) {
	_, ts := newTestServer(t, texmath.New(), testConfig())

	resp, err := http.Post(ts.URL+"/render", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatalf("POST /render: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestIndexPage(t *testing.T) {
	_, ts := newTestServer(t, texmath.New(), testConfig())

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	page := string(body)

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<textarea autofocus id="source" rows="4" spellcheck="false">a+b</textarea>`,
		`<mi>a</mi><mo>+</mo><mi>b</mi>`,
		`<pre hidden id="diagnostic"></pre>`,
		`new WebSocket(`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestIndexPageInitialFailure(t *testing.T) {
	cfg := testConfig()
	cfg.Initial = `\frac{1}`
	_, ts := newTestServer(t, texmath.New(), cfg)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	page := string(body)

	if !strings.Contains(page, `<div hidden id="preview"></div>`) {
		t.Error("preview should be hidden on failure")
	}
	if !strings.Contains(page, "Expected group after &#39;\\frac&#39;\n\\frac{1}\n        ^") &&
		!strings.Contains(page, "Expected group after '\\frac'\n\\frac{1}\n        ^") {
		t.Errorf("diagnostic missing from page:\n%s", page)
	}
	if !strings.Contains(page, `class="error"`) {
		t.Error("textarea should be marked as error")
	}
}

func dialSession(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readUpdate(t *testing.T, conn *websocket.Conn) Update {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var u Update
	if err := conn.ReadJSON(&u); err != nil {
		t.Fatalf("read update: %v", err)
	}
	return u
}

func TestWebSocketSession(t *testing.T) {
	s, ts := newTestServer(t, texmath.New(), testConfig())
	conn := dialSession(t, ts)

	first := readUpdate(t, conn)
	if first.Seq != 1 || !first.OK || !strings.Contains(first.HTML, "<mi>b</mi>") {
		t.Fatalf("initial update = %+v", first)
	}
	if got := s.SessionCount(); got != 1 {
		t.Errorf("SessionCount() = %d, want 1", got)
	}

	if err := conn.WriteJSON(ClientMessage{Text: `\frac{1}`}); err != nil {
		t.Fatalf("write: %v", err)
	}
	failed := readUpdate(t, conn)
	if failed.Seq != 2 || failed.OK || failed.Position != 8 {
		t.Fatalf("failure update = %+v", failed)
	}
	if failed.Diagnostic != "\\frac{1}\n        ^" {
		t.Errorf("diagnostic = %q", failed.Diagnostic)
	}

	// Repeating the text does not produce an update; the next one is for x^2.
	if err := conn.WriteJSON(ClientMessage{Text: `\frac{1}`}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.WriteJSON(ClientMessage{Text: "x^2"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	fixed := readUpdate(t, conn)
	if fixed.Seq != 3 || !fixed.OK || !strings.Contains(fixed.HTML, "<msup><mi>x</mi><mn>2</mn></msup>") {
		t.Fatalf("recovered update = %+v", fixed)
	}
}

func TestWebSocketIgnoresBadMessages(t *testing.T) {
	_, ts := newTestServer(t, texmath.New(), testConfig())
	conn := dialSession(t, ts)
	readUpdate(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.WriteJSON(ClientMessage{Text: "y"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	u := readUpdate(t, conn)
	if u.Seq != 2 || !strings.Contains(u.HTML, "<mi>y</mi>") {
		t.Fatalf("update = %+v, want render of y", u)
	}
}

func TestWebSocketSessionsAreIndependent(t *testing.T) {
	_, ts := newTestServer(t, texmath.New(), testConfig())
	a := dialSession(t, ts)
	b := dialSession(t, ts)
	readUpdate(t, a)
	readUpdate(t, b)

	if err := a.WriteJSON(ClientMessage{Text: `\alpha`}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := b.WriteJSON(ClientMessage{Text: `\beta`}); err != nil {
		t.Fatalf("write: %v", err)
	}

	if u := readUpdate(t, a); !strings.Contains(u.HTML, "<mi>α</mi>") {
		t.Errorf("session a got %s", u.HTML)
	}
	if u := readUpdate(t, b); !strings.Contains(u.HTML, "<mi>β</mi>") {
		t.Errorf("session b got %s", u.HTML)
	}
}

func TestSanitizeWhenUntrusted(t *testing.T) {
	engine := pipeline.EngineFunc(func(string, pipeline.RenderOptions) (pipeline.RenderedOutput, error) {
		return `<math><mi id="x" onclick="evil()">a</mi></math>`, nil
	})

	tests := []struct {
		name     string
		opts     pipeline.RenderOptions
		sanitize bool
		want     string
	}{
		{"untrusted", pipeline.InlinePreset(), true, `<math><mi>a</mi></math>`},
		{"trusted", pipeline.DisplayPreset(), true, `<math><mi id="x" onclick="evil()">a</mi></math>`},
		{"disabled", pipeline.InlinePreset(), false, `<math><mi id="x" onclick="evil()">a</mi></math>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Options = tt.opts
			cfg.Sanitize = tt.sanitize
			_, ts := newTestServer(t, engine, cfg)

			resp, err := http.Get(ts.URL + "/render?text=a")
			if err != nil {
				t.Fatalf("GET /render: %v", err)
			}
			if u := getUpdate(t, resp); u.HTML != tt.want {
				t.Errorf("html = %s, want %s", u.HTML, tt.want)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics = true
	cfg.Registry = prometheus.NewRegistry()
	_, ts := newTestServer(t, texmath.New(), cfg)

	resp, err := http.Get(ts.URL + "/render?text=" + url.QueryEscape(`\frac{1}`))
	if err != nil {
		t.Fatalf("GET /render: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), `mathlive_renders_total{class="syntax",result="failure"} 1`) {
		t.Errorf("metrics missing failed render:\n%s", body)
	}
}

func TestMetricsDisabled(t *testing.T) {
	_, ts := newTestServer(t, texmath.New(), testConfig())

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
