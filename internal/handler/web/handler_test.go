package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"RiskView/internal/adapter/htmlview"
	"RiskView/internal/domain/models"
	"RiskView/internal/registry"
	"RiskView/internal/repository"
	"RiskView/internal/service/ratelimit"
	"RiskView/internal/service/riskapi"
	"RiskView/internal/services/colorscale"
	"RiskView/internal/services/render"
	"RiskView/internal/services/sorter"
	"RiskView/internal/usecase"
	"RiskView/pkg/cache"
	xhttp "RiskView/pkg/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	mu    sync.Mutex
	paths []string
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.paths = append(b.paths, r.URL.Path)
	b.mu.Unlock()

	q := r.URL.Query()
	switch {
	case strings.HasSuffix(r.URL.Path, "/api/metrics"):
		fmt.Fprint(w, `[
			{"Index Name":"NFMCG","Ret":12,"V1":0.5,"Risk":40,"AbsMom":3,"Momentum":1},
			{"Index Name":"N50","Ret":10,"V1":0.7,"Risk":30,"AbsMom":null,"RMom":2},
			{"Index Name":"NBANK","Ret":18,"V1":0.9,"Risk":70,"AbsMom":12,"Momentum":15},
			{"Index Name":"NAUTO","Ret":5,"V1":0.1,"Risk":55,"AbsMom":9,"Momentum":-20}
		]`)
	case strings.HasSuffix(r.URL.Path, "/api/heatmap_data"):
		switch q.Get("index") {
		case "BAD":
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		case "SLOW":
			time.Sleep(150 * time.Millisecond)
		}
		fmt.Fprintf(w, `{"indexName":%q,"cagr":0.12,"volatility":0.2,"currentPrice":100,
			"mode":%q,"timeline":%q,
			"heatmapData":{"2023":{"1":5.5,"2":null},"2022":{"1":-3.0}}}`,
			q.Get("index"), q.Get("mode"), q.Get("timeline"))
	default:
		http.NotFound(w, r)
	}
}

func (b *backend) lastPath() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.paths) == 0 {
		return ""
	}
	return b.paths[len(b.paths)-1]
}

func newTestEcho(t *testing.T, limiter ...*ratelimit.Limiter) (*echo.Echo, *backend) {
	t.Helper()
	lim := ratelimit.New(100, 100)
	if len(limiter) > 0 {
		lim = limiter[0]
	}
	be := &backend{}
	srv := httptest.NewServer(be)
	t.Cleanup(srv.Close)

	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	store := repository.NewSessionStore(mc, time.Minute)

	srt := sorter.New()
	loader := usecase.NewLoader(riskapi.New(srv.URL, 5*time.Second), registry.Default(), srt, usecase.LoaderConfig{}, nil)
	views := usecase.NewViews(loader, render.New(colorscale.PolicyDynamic, colorscale.HigherIsBetter), srt,
		store, store, nil, nil)
	pages, err := htmlview.New()
	require.NoError(t, err)

	h := NewViewHandler(views, pages, lim, time.Minute, nil)
	s := xhttp.NewServer(h, nil, xhttp.WithMountNames("risk-reward", "riskreward"), xhttp.WithMetrics(false, ""))
	return s.Echo(), be
}

type client struct {
	e       *echo.Echo
	cookies []*http.Cookie
}

func (c *client) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	if cks := rec.Result().Cookies(); len(cks) > 0 {
		c.cookies = cks
	}
	return rec
}

type treeEnvelope struct {
	Status int               `json:"status"`
	Data   render.RenderTree `json:"data"`
}

func decodeTree(t *testing.T, rec *httptest.ResponseRecorder) render.RenderTree {
	t.Helper()
	var env treeEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Data
}

func rowNames(tree render.RenderTree) []string {
	var out []string
	for _, r := range tree.Category.Rows {
		out = append(out, r.Name)
	}
	return out
}

func TestHeatmapPageUnderMountPrefix(t *testing.T) {
	e, be := newTestEcho(t)
	c := &client{e: e}

	rec := c.get(t, "/Risk-Reward/heatmap?index=N50&mode=rolling&timeline=3.5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Contains(t, rec.Header().Get("Cache-Control"), "no-store")
	assert.Equal(t, "/Risk-Reward/api/heatmap_data", be.lastPath())

	body := rec.Body.String()
	assert.Contains(t, body, "Rolling 3.5-Year Returns Heatmap")
	assert.Contains(t, body, "12.00%")
	assert.Contains(t, body, `action="/Risk-Reward/heatmap/year"`)

	require.Len(t, c.cookies, 1)
	assert.Equal(t, sessionCookie, c.cookies[0].Name)
	assert.Equal(t, "/Risk-Reward", c.cookies[0].Path)

	rec = c.get(t, "/Risk-Reward/heatmap/year?year=2022")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="year hidden">2023`)
	assert.Contains(t, rec.Body.String(), `<option value="2022" selected>`)
}

func TestAPICategorySortWithoutRefetch(t *testing.T) {
	e, be := newTestEcho(t)
	c := &client{e: e}

	rec := c.get(t, "/api/view?category=Sector")
	require.Equal(t, http.StatusOK, rec.Code)
	tree := decodeTree(t, rec)
	assert.Equal(t, models.StateCategoryDisplayed, tree.State)
	assert.Equal(t, []string{"NAUTO", "NBANK", "NFMCG"}, rowNames(tree))
	assert.Equal(t, "/api/metrics", be.lastPath())

	rec = c.get(t, "/api/view/sort?column=ret")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"NBANK", "NFMCG", "NAUTO"}, rowNames(decodeTree(t, rec)))

	rec = c.get(t, "/api/view/sort?column=ret")
	require.Equal(t, http.StatusOK, rec.Code)
	tree = decodeTree(t, rec)
	assert.Equal(t, []string{"NAUTO", "NFMCG", "NBANK"}, rowNames(tree))
	assert.True(t, tree.Category.Sort.Ascending)

	be.mu.Lock()
	assert.Len(t, be.paths, 1)
	be.mu.Unlock()
}

func TestAPIErrorMapping(t *testing.T) {
	e, _ := newTestEcho(t)

	tests := []struct {
		name    string
		setup   string
		target  string
		status  int
		message string
	}{
		{name: "no target", target: "/api/view", status: http.StatusBadRequest, message: "No index or category specified"},
		{name: "bad mode", target: "/api/view?index=N50&mode=weekly", status: http.StatusBadRequest, message: "one of"},
		{name: "empty category", target: "/api/view?category=Thematic", status: http.StatusNotFound, message: "No data found for this category"},
		{name: "backend failure", target: "/api/view?index=BAD", status: http.StatusBadGateway, message: "Failed to load data"},
		{name: "sort before load", target: "/api/view/sort?column=ret", status: http.StatusConflict, message: "not available"},
		{name: "year on category", setup: "/api/view?category=Sector", target: "/api/view/year?year=2022", status: http.StatusConflict, message: "not available"},
		{name: "unknown column", setup: "/api/view?category=Sector", target: "/api/view/sort?column=price", status: http.StatusBadRequest, message: "unknown"},
		{name: "missing column", target: "/api/view/sort", status: http.StatusBadRequest, message: "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &client{e: e}
			if tt.setup != "" {
				require.Equal(t, http.StatusOK, c.get(t, tt.setup).Code)
			}
			rec := c.get(t, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}
}

func TestPageShowsErrorMessage(t *testing.T) {
	e, _ := newTestEcho(t)
	c := &client{e: e}

	rec := c.get(t, "/heatmap")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `<div class="message error">No index or category specified</div>`)
}

func TestLoadsAreRateLimitedPerSession(t *testing.T) {
	e, _ := newTestEcho(t, ratelimit.New(1, 0.001))
	c := &client{e: e}

	require.Equal(t, http.StatusOK, c.get(t, "/api/view?index=N50").Code)
	rec := c.get(t, "/api/view?index=N50")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_RATE_LIMITED")

	other := &client{e: e}
	assert.Equal(t, http.StatusOK, other.get(t, "/api/view?index=N50").Code)
}

type wsFrame struct {
	Type   string                   `json:"type"`
	View   *render.RenderTree       `json:"view"`
	Errors []map[string]interface{} `json:"errors"`
}

func TestStreamLoadAndErrors(t *testing.T) {
	e, _ := newTestEcho(t)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/riskreward/ws/view"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() wsFrame {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var f wsFrame
		require.NoError(t, conn.ReadJSON(&f))
		return f
	}

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "load", "index": "N50", "timeline": "4"}))
	f := read()
	assert.Equal(t, FrameView, f.Type)
	require.NotNil(t, f.View)
	assert.Equal(t, models.StateLoading, f.View.State)

	f = read()
	require.NotNil(t, f.View)
	assert.Equal(t, models.StateHeatmapDisplayed, f.View.State)
	assert.Equal(t, "Trailing 4-Year Returns Heatmap", f.View.Heatmap.Title)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "year", "year": "2023"}))
	f = read()
	require.NotNil(t, f.View)
	assert.Equal(t, "2023", f.View.Heatmap.SelectedYear)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "sort", "column": "ret"}))
	f = read()
	assert.Equal(t, FrameError, f.Type)
	require.Len(t, f.Errors, 1)
	assert.Equal(t, "ERR_CONFLICT", f.Errors[0]["code"])

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "refresh"}))
	f = read()
	assert.Equal(t, FrameError, f.Type)
	require.NotEmpty(t, f.Errors)
	assert.Equal(t, "ERR_ONEOF", f.Errors[0]["code"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	f = read()
	assert.Equal(t, FrameError, f.Type)
	assert.Equal(t, "ERR_INVALID_JSON", f.Errors[0]["code"])

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "load"}))
	f = read()
	assert.Equal(t, FrameError, f.Type)
	f = read()
	require.NotNil(t, f.View)
	assert.Equal(t, models.StateError, f.View.State)
	assert.Equal(t, "No index or category specified", f.View.Message)
}

func TestStreamShowsLatestOfBackToBackLoads(t *testing.T) {
	tests := []struct {
		name  string
		first string
	}{
		{name: "both fast", first: "N50"},
		{name: "first slower", first: "SLOW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEcho(t)
			srv := httptest.NewServer(e)
			defer srv.Close()

			url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/view"
			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			require.NoError(t, err)
			defer conn.Close()

			require.NoError(t, conn.WriteJSON(map[string]string{"type": "load", "index": tt.first}))
			require.NoError(t, conn.WriteJSON(map[string]string{"type": "load", "index": "NSECOND"}))

			read := func() wsFrame {
				t.Helper()
				require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
				var f wsFrame
				require.NoError(t, conn.ReadJSON(&f))
				return f
			}

			var shown []string
			for len(shown) == 0 || shown[len(shown)-1] != "NSECOND" {
				f := read()
				if f.View != nil && f.View.Heatmap != nil {
					shown = append(shown, f.View.Heatmap.IndexName)
				}
			}

			// A year change answers from the view the channel holds; nothing older may
			// arrive in between.
			require.NoError(t, conn.WriteJSON(map[string]string{"type": "year", "year": "2023"}))
			for {
				f := read()
				require.NotNil(t, f.View)
				require.NotNil(t, f.View.Heatmap)
				assert.Equal(t, "NSECOND", f.View.Heatmap.IndexName)
				if f.View.Heatmap.SelectedYear == "2023" {
					break
				}
			}
			if tt.first == "SLOW" {
				assert.Equal(t, []string{"NSECOND"}, shown)
			}
		})
	}
}
