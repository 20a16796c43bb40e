package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-doublefield/internal/server"
	"github.com/goliatone/go-doublefield/pkg/display"
	"github.com/goliatone/go-doublefield/pkg/formatter"
	"github.com/goliatone/go-doublefield/pkg/formatters/details"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	registry := formatter.NewRegistry()
	registry.MustRegister(details.New())
	store, err := display.LoadFS(fstest.MapFS{
		"faq.yaml": {Data: []byte(`
displays:
  - entity: node
    bundle: faq
    field: field_qa
    type: details
    settings:
      open: false
      second:
        hidden: true
`)},
	}, registry)
	if err != nil {
		t.Fatalf("load displays: %v", err)
	}

	srv := httptest.NewServer(server.New(
		server.WithFormatters(registry),
		server.WithDisplayStore(store),
	))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func post(t *testing.T, url, payload string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestListFormatters(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/formatters")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, body)
	}
	var defs []formatter.Definition
	if err := json.Unmarshal(body, &defs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []formatter.Definition{{ID: "details", Label: "Details", FieldTypes: []string{"double_field"}}}
	if diff := cmp.Diff(want, defs); diff != "" {
		t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
	}

	_, body = get(t, srv.URL+"/formatters?field_type=string")
	if strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("expected no formatters for string fields, got %s", body)
	}
}

func TestGetFormatter(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/formatters/details")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, body)
	}
	var info struct {
		ID              string         `json:"id"`
		DefaultSettings map[string]any `json:"default_settings"`
		SettingsForm    map[string]any `json:"settings_form"`
		Summary         []string       `json:"summary"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.ID != "details" || info.DefaultSettings["open"] != true {
		t.Fatalf("unexpected formatter info: %+v", info)
	}
	if _, ok := info.SettingsForm["open"]; !ok {
		t.Fatalf("expected open element in settings form: %v", info.SettingsForm)
	}
	if diff := cmp.Diff([]string{"Open: yes"}, info.Summary); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	resp, _ = get(t, srv.URL+"/formatters/missing")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestFormatterSummary_ForDisplay(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/formatters/details/summary?display=node.faq.field_qa")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, body)
	}
	var summary struct {
		Display string   `json:"display"`
		Summary []string `json:"summary"`
	}
	if err := json.Unmarshal(body, &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Display != "node.faq.field_qa.default" {
		t.Fatalf("unexpected display %q", summary.Display)
	}
	want := []string{"Open: no", "Second subfield: hidden"}
	if diff := cmp.Diff(want, summary.Summary); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	resp, _ = get(t, srv.URL+"/formatters/details/summary?display=node.page.body")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown display, got %d", resp.StatusCode)
	}
	resp, _ = get(t, srv.URL+"/formatters/details/summary?display=bad")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed key, got %d", resp.StatusCode)
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)

	resp, body := post(t, srv.URL+"/render", `{
		"formatter": "details",
		"settings": {"open": false},
		"items": [{"first": "A", "second": "B"}],
		"renderer": "json"
	}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	want := `{"0":{"#open":false,"#title":"A","#type":"details","#value":"B"}}`
	if string(body) != want {
		t.Fatalf("unexpected body\nwant: %s\n got: %s", want, body)
	}
}

func TestRender_Display(t *testing.T) {
	srv := newTestServer(t)

	resp, body := post(t, srv.URL+"/render", `{"display": "node.faq.field_qa", "items": [{"first": "A", "second": "B"}]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, body)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		t.Fatalf("expected html default renderer, got %q", resp.Header.Get("Content-Type"))
	}
	out := string(body)
	if !strings.Contains(out, `<summary class="double-field__first">A</summary>`) {
		t.Fatalf("missing summary in %s", out)
	}
	if strings.Contains(out, ">B<") {
		t.Fatalf("hidden second subfield rendered: %s", out)
	}
}

func TestRender_Errors(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name    string
		payload string
		status  int
	}{
		{name: "malformed body", payload: `{`, status: http.StatusBadRequest},
		{name: "unknown field", payload: `{"items": [], "colour": "red"}`, status: http.StatusBadRequest},
		{name: "unknown formatter", payload: `{"formatter": "nope", "items": []}`, status: http.StatusNotFound},
		{name: "unknown renderer", payload: `{"renderer": "pdf", "items": []}`, status: http.StatusNotFound},
		{name: "invalid settings", payload: `{"settings": {"open": "sometimes"}, "items": []}`, status: http.StatusUnprocessableEntity},
		{name: "unknown display", payload: `{"display": "node.page.body", "items": []}`, status: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := post(t, srv.URL+"/render", tc.payload)
			if resp.StatusCode != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, resp.StatusCode, body)
			}
		})
	}
}

func TestMetricsAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := get(t, srv.URL+"/healthz")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	get(t, srv.URL+"/formatters")
	resp, body := get(t, srv.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `doublefield_http_requests_total{method="GET",path="/formatters`) {
		t.Fatalf("expected request counter in metrics output:\n%s", body)
	}
}

func TestListDisplays(t *testing.T) {
	srv := newTestServer(t)

	_, body := get(t, srv.URL+"/displays")
	var displays []struct {
		Key       string `json:"key"`
		Formatter string `json:"formatter"`
	}
	if err := json.Unmarshal(body, &displays); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(displays) != 1 || displays[0].Key != "node.faq.field_qa.default" || displays[0].Formatter != "details" {
		t.Fatalf("unexpected displays: %+v", displays)
	}
}
