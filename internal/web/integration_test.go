package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/rubysdiner/internal/assets"
	"github.com/vbonduro/rubysdiner/internal/catalog"
	"github.com/vbonduro/rubysdiner/internal/domain"
	"github.com/vbonduro/rubysdiner/internal/site"
	"github.com/vbonduro/rubysdiner/internal/web"
	"github.com/vbonduro/rubysdiner/internal/web/templates"
)

// memImageStore is a simple in-memory implementation of assets.ImageStore.
type memImageStore struct {
	mu     sync.Mutex
	images map[string][]byte
}

func (m *memImageStore) Get(_ context.Context, name string) (io.ReadCloser, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if strings.Contains(name, "..") {
		return nil, "", fmt.Errorf("path traversal attempt")
	}
	data, ok := m.images[name]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", assets.ErrNotFound, name)
	}
	return io.NopCloser(bytes.NewReader(data)), "image/png", nil
}

func (m *memImageStore) List(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.images))
	for n := range m.images {
		names = append(names, n)
	}
	return names, nil
}

func newTestServer(t *testing.T, opts web.Options) *httptest.Server {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	if opts.Site.DefaultCategory == "" {
		opts.Site = site.DefaultOptions()
	}
	images := &memImageStore{images: map[string][]byte{"menu/burger.png": []byte("png")}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := web.NewServer(cat, templates.FS, images, opts, logger)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestIndexRendersFullPage(t *testing.T) {
	ts := newTestServer(t, web.Options{})

	resp, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.NotEmpty(t, resp.Header.Get("Content-Security-Policy"))

	assert.Contains(t, body, `<head data-vid="v1">`)
	assert.Contains(t, body, `<body data-vid="v2" data-mode="fallback">`)
	for _, id := range []string{"home", "menu", "reservations", "celebrities", "testimonials", "staff", "about"} {
		assert.Contains(t, body, `id="`+id+`"`)
	}
	assert.Contains(t, body, `id="animation-styles"`)
	assert.Contains(t, body, `hx-get="/partials/menu/sides"`)
	assert.Contains(t, body, "static/bridge.js")
	assert.Contains(t, body, "unpkg.com/htmx.org")
}

func TestIndexLiveMode(t *testing.T) {
	ts := newTestServer(t, web.Options{Live: http.NotFoundHandler()})

	_, body := get(t, ts.URL+"/")
	assert.Contains(t, body, `data-mode="live"`)
}

func TestRenderIndexStatic(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	srv := web.NewServer(cat, templates.FS, nil, web.Options{Site: site.DefaultOptions()}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var buf bytes.Buffer
	require.NoError(t, srv.RenderIndex(&buf, web.ModeStatic))
	assert.Contains(t, buf.String(), `data-mode="static"`)
	assert.NotContains(t, buf.String(), "htmx.org")
}

func TestMenuPartial(t *testing.T) {
	ts := newTestServer(t, web.Options{})

	resp, body := get(t, ts.URL+"/partials/menu/sides")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 4, strings.Count(body, `class="menu-item"`))
	assert.Contains(t, body, "Crispy Fries")

	resp, body = get(t, ts.URL+"/partials/menu/breakfast")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, strings.TrimSpace(body))
}

func TestReservationFallback(t *testing.T) {
	ts := newTestServer(t, web.Options{})

	form := url.Values{
		"name":             {"Jane <b>Doe</b>"},
		"email":            {"jane@example.com"},
		"date":             {"2024-03-08"},
		"time":             {"19:00"},
		"guests":           {"2"},
		"booth":            {"any"},
		"special-requests": {""},
	}
	resp, err := http.PostForm(ts.URL+"/reservations", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Reservation Confirmed!")
	assert.Contains(t, string(body), "Thank you, Jane &lt;b&gt;Doe&lt;/b&gt;!")
	assert.Contains(t, string(body), "Friday, March 8, 2024")
	assert.Contains(t, string(body), `class="reservation-modal"`)
}

func TestReservationMissingField(t *testing.T) {
	ts := newTestServer(t, web.Options{})

	resp, err := http.PostForm(ts.URL+"/reservations", url.Values{"name": {"Jane"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMenuAPI(t *testing.T) {
	ts := newTestServer(t, web.Options{CORSOrigins: []string{"https://rubys.example"}})

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/menu", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://rubys.example")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://rubys.example", resp.Header.Get("Access-Control-Allow-Origin"))
	var cats []domain.MenuCategory
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cats))
	require.NotEmpty(t, cats)
	assert.Equal(t, "burgers", cats[0].Key)

	resp2, body := get(t, ts.URL+"/api/menu/sides")
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Contains(t, body, "Crispy Fries")

	resp3, _ := get(t, ts.URL+"/api/menu/breakfast")
	assert.Equal(t, http.StatusNotFound, resp3.StatusCode)
}

func TestImagesAndStatic(t *testing.T) {
	ts := newTestServer(t, web.Options{})

	resp, body := get(t, ts.URL+"/assets/images/menu/burger.png")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "png", body)

	resp, _ = get(t, ts.URL+"/assets/images/menu/missing.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = get(t, ts.URL+"/static/bridge.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "WebSocket")

	resp, _ = get(t, ts.URL+"/static/style.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestLiveRouteDisabledWithoutHandler(t *testing.T) {
	ts := newTestServer(t, web.Options{})

	resp, _ := get(t, ts.URL+"/live")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
