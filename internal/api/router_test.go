package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	_ "github.com/vovakirdan/mini-arcade/internal/games/asteroids"
	_ "github.com/vovakirdan/mini-arcade/internal/games/snake"
	"github.com/vovakirdan/mini-arcade/internal/metrics"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/scores"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	cfg.Logger = log.New(io.Discard)
	ts := httptest.NewServer(NewRouter(cfg))
	t.Cleanup(ts.Close)
	return ts
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func getJSON(t *testing.T, url string, into any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if into != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, Config{})
	var body map[string]string
	if code := getJSON(t, ts.URL+"/healthz", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestListGamesIncludesBests(t *testing.T) {
	bests := scores.New(&scores.MemoryBlob{}, scores.WithOrders(registry.OrderOf))
	bests.Record(1, 70)
	ts := newTestServer(t, Config{Bests: bests})

	var games []gameJSON
	if code := getJSON(t, ts.URL+"/api/games", &games); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}

	seen := map[string]gameJSON{}
	for _, g := range games {
		seen[g.Slug] = g
	}
	snake, ok := seen["snake"]
	if !ok {
		t.Fatalf("snake missing from %v", games)
	}
	if snake.Best == nil || *snake.Best != 70 {
		t.Errorf("snake best = %v, expected 70", snake.Best)
	}
	if got := seen["asteroids-time"].Order; got != scores.LowerIsBetter.String() {
		t.Errorf("asteroids-time order = %q", got)
	}
	if seen["asteroids"].Best != nil {
		t.Error("asteroids has a best without any record")
	}
}

func TestGetBest(t *testing.T) {
	bests := scores.New(&scores.MemoryBlob{}, scores.WithOrders(registry.OrderOf))
	bests.Record(5, 45)
	ts := newTestServer(t, Config{Bests: bests})

	tests := []struct {
		path string
		code int
		best int
	}{
		{"/api/games/asteroids-time/best", http.StatusOK, 45},
		{"/api/games/5/best", http.StatusOK, 45},
		{"/api/games/snake/best", http.StatusNotFound, 0},
		{"/api/games/nope/best", http.StatusNotFound, 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var body struct {
				Best int `json:"best"`
			}
			code := getJSON(t, ts.URL+tt.path, &body)
			if code != tt.code {
				t.Fatalf("status = %d, expected %d", code, tt.code)
			}
			if code == http.StatusOK && body.Best != tt.best {
				t.Errorf("best = %d, expected %d", body.Best, tt.best)
			}
		})
	}
}

func TestTopScoresOrder(t *testing.T) {
	store := openStore(t)
	for _, s := range []int{45, 30, 50} {
		if _, err := store.SaveRun(5, s, "won", uint64(s*60)); err != nil {
			t.Fatal(err)
		}
	}
	for _, s := range []int{100, 300, 200} {
		if _, err := store.SaveRun(1, s, "lost", 0); err != nil {
			t.Fatal(err)
		}
	}
	ts := newTestServer(t, Config{Runs: store})

	var timed []runJSON
	getJSON(t, ts.URL+"/api/games/asteroids-time/scores", &timed)
	if len(timed) != 3 || timed[0].Score != 30 || timed[2].Score != 50 {
		t.Errorf("asteroids-time scores = %+v, expected ascending 30..50", timed)
	}

	var snake []runJSON
	getJSON(t, ts.URL+"/api/games/snake/scores?limit=2", &snake)
	if len(snake) != 2 || snake[0].Score != 300 || snake[1].Score != 200 {
		t.Errorf("snake scores = %+v, expected 300, 200", snake)
	}
	if snake[0].Game != "snake" || snake[0].Result != "lost" {
		t.Errorf("run = %+v", snake[0])
	}
}

func TestRecentRunsAndStats(t *testing.T) {
	store := openStore(t)
	store.SaveRun(1, 10, "lost", 100)
	store.SaveRun(1, 30, "lost", 300)
	ts := newTestServer(t, Config{Runs: store})

	var recent []runJSON
	getJSON(t, ts.URL+"/api/runs/recent", &recent)
	if len(recent) != 2 {
		t.Fatalf("recent = %d runs, expected 2", len(recent))
	}

	var st statsJSON
	getJSON(t, ts.URL+"/api/games/snake/stats", &st)
	if st.Runs != 2 || st.AvgScore != 20 {
		t.Errorf("stats = %+v", st)
	}
}

func TestScoresWithoutDatabase(t *testing.T) {
	ts := newTestServer(t, Config{})
	var runs []runJSON
	if code := getJSON(t, ts.URL+"/api/games/snake/scores", &runs); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(runs) != 0 {
		t.Errorf("runs = %v, expected none", runs)
	}
}

func TestRateLimit(t *testing.T) {
	m := metrics.New()
	ts := newTestServer(t, Config{RateLimit: 1, RateBurst: 2, Metrics: m})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, getJSON(t, ts.URL+"/healthz", nil))
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst codes = %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, expected 429", codes[2])
	}
}

func TestIPLimiterRefills(t *testing.T) {
	l := newIPLimiter(1, 1)
	now := time.Unix(1000, 0)
	l.now = func() time.Time { return now }

	if !l.Allow("a") {
		t.Fatal("first request denied")
	}
	if l.Allow("a") {
		t.Fatal("second request allowed without refill")
	}
	if !l.Allow("b") {
		t.Error("other client shares the bucket")
	}
	now = now.Add(time.Second)
	if !l.Allow("a") {
		t.Error("request denied after refill")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	if got := clientIP(r); got != "10.0.0.1" {
		t.Errorf("clientIP() = %q", got)
	}
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := clientIP(r); got != "203.0.113.9" {
		t.Errorf("clientIP() with XFF = %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	m.RunFinished("snake", "lost", false)
	ts := newTestServer(t, Config{Metrics: m})

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "arcade_runs_total") {
		t.Errorf("metrics body missing arcade_runs_total")
	}
}

func TestCORSHeaders(t *testing.T) {
	ts := newTestServer(t, Config{CORSOrigins: []string{"https://arcade.example"}})
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/games", nil)
	req.Header.Set("Origin", "https://arcade.example")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://arcade.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
