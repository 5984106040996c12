package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/ortan-league/internal/config"
	"github.com/riskibarqy/ortan-league/internal/domain/leaderboard"
	"github.com/riskibarqy/ortan-league/internal/infrastructure/repository/memory"
	leaderboardmock "github.com/riskibarqy/ortan-league/internal/mocks/domain/leaderboard"
	"github.com/riskibarqy/ortan-league/internal/platform/logging"
	"github.com/riskibarqy/ortan-league/internal/usecase"
	"github.com/stretchr/testify/mock"
)

type standingView struct {
	TeamID string `json:"teamId"`
	Played int    `json:"played"`
	W      int    `json:"w"`
	D      int    `json:"d"`
	L      int    `json:"l"`
	Points int    `json:"points"`
}

type resultView struct {
	Success  bool           `json:"success"`
	Division string         `json:"division"`
	Board    []standingView `json:"board"`
	Error    string         `json:"error"`
}

func starterOnlyDataset() leaderboard.Dataset {
	return leaderboard.Dataset{
		Divisions: map[string]leaderboard.Table{
			"Starter": {
				{TeamID: "T1", Extra: map[string]any{"name": "Ortan Lions"}},
				{TeamID: "T2", Extra: map[string]any{"name": "Ortan Owls"}},
			},
		},
	}
}

func newTestRouter(t *testing.T, repo leaderboard.Repository, admin config.AdminCredentials) http.Handler {
	t.Helper()
	logger := logging.NewNop()
	service := usecase.NewLeaderboardService(repo, logger)
	return NewRouter(NewHandler(service, logger), RouterOptions{
		CORSAllowedOrigins: []string{"*"},
		Admin:              admin,
	}, logger)
}

func newMemoryRouter(t *testing.T, admin config.AdminCredentials) http.Handler {
	t.Helper()
	repo, err := memory.NewLeaderboardRepository(starterOnlyDataset())
	if err != nil {
		t.Fatalf("new memory repository: %v", err)
	}
	return newTestRouter(t, repo, admin)
}

func postResult(t *testing.T, router http.Handler, body string, setAuth func(*http.Request)) (*httptest.ResponseRecorder, resultView) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/result", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if setAuth != nil {
		setAuth(req)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var view resultView
	if err := sonic.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, view
}

func getLeaderboards(t *testing.T, router http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboards", nil))
	return rec
}

func resultBody(division, home, away string, homeGoals, awayGoals int) string {
	return fmt.Sprintf(`{"division":%q,"homeTeamId":%q,"awayTeamId":%q,"homeGoals":%d,"awayGoals":%d}`,
		division, home, away, homeGoals, awayGoals)
}

func TestGetLeaderboards_ReturnsDocument(t *testing.T) {
	router := newMemoryRouter(t, config.AdminCredentials{})

	rec := getLeaderboards(t, router)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Leaderboards map[string][]map[string]any `json:"leaderboards"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	starter := body.Leaderboards["Starter"]
	if len(starter) != 2 || starter[0]["teamId"] != "T1" || starter[0]["name"] != "Ortan Lions" {
		t.Fatalf("unexpected starter table: %v", starter)
	}
}

func TestPostResult_HomeWin(t *testing.T) {
	router := newMemoryRouter(t, config.AdminCredentials{})

	rec, view := postResult(t, router, resultBody("Starter", "T1", "T2", 2, 1), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !view.Success || view.Division != "Starter" || len(view.Board) != 2 {
		t.Fatalf("unexpected response: %+v", view)
	}
	want := []standingView{
		{TeamID: "T1", Played: 1, W: 1, Points: 3},
		{TeamID: "T2", Played: 1, L: 1},
	}
	for i := range want {
		if view.Board[i] != want[i] {
			t.Fatalf("board[%d]=%+v want %+v", i, view.Board[i], want[i])
		}
	}
}

func TestPostResult_DrawKeepsOrder(t *testing.T) {
	router := newMemoryRouter(t, config.AdminCredentials{})

	rec, view := postResult(t, router, resultBody("Starter", "T1", "T2", 1, 1), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	want := []standingView{
		{TeamID: "T1", Played: 1, D: 1, Points: 1},
		{TeamID: "T2", Played: 1, D: 1, Points: 1},
	}
	for i := range want {
		if view.Board[i] != want[i] {
			t.Fatalf("board[%d]=%+v want %+v", i, view.Board[i], want[i])
		}
	}
}

func TestPostResult_PersistsBetweenRequests(t *testing.T) {
	router := newMemoryRouter(t, config.AdminCredentials{})

	if rec, _ := postResult(t, router, resultBody("Starter", "T2", "T1", 3, 0), nil); rec.Code != http.StatusOK {
		t.Fatalf("first result: status %d", rec.Code)
	}
	_, view := postResult(t, router, resultBody("Starter", "T2", "T1", 1, 1), nil)
	top := view.Board[0]
	if top.TeamID != "T2" || top.Played != 2 || top.W != 1 || top.D != 1 || top.Points != 4 {
		t.Fatalf("unexpected top row after two results: %+v", top)
	}

	var body struct {
		Leaderboards map[string][]standingView `json:"leaderboards"`
	}
	if err := sonic.Unmarshal(getLeaderboards(t, router).Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Leaderboards["Starter"][0] != top {
		t.Fatalf("read endpoint disagrees with write response: %+v vs %+v", body.Leaderboards["Starter"][0], top)
	}
}

func TestPostResult_RejectsWithoutChangingDataset(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "unknown division", body: resultBody("Elite", "T1", "T2", 1, 0), wantMsg: "Invalid division"},
		{name: "unknown team", body: resultBody("Starter", "T1", "T9", 1, 0), wantMsg: "Team not found in division"},
		{name: "missing away goals", body: `{"division":"Starter","homeTeamId":"T1","awayTeamId":"T2","homeGoals":1}`, wantMsg: "Missing required fields"},
		{name: "empty division", body: resultBody("", "T1", "T2", 1, 0), wantMsg: "Missing required fields"},
		{name: "blank team id", body: resultBody("Starter", "  ", "T2", 1, 0), wantMsg: "Missing required fields"},
		{name: "negative goals", body: resultBody("Starter", "T1", "T2", -1, 0), wantMsg: "Invalid goal count"},
		{name: "malformed json", body: `{"division":`, wantMsg: "Invalid request body"},
		{name: "string goals", body: `{"division":"Starter","homeTeamId":"T1","awayTeamId":"T2","homeGoals":"2","awayGoals":1}`, wantMsg: "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newMemoryRouter(t, config.AdminCredentials{})
			before := getLeaderboards(t, router).Body.String()

			rec, view := postResult(t, router, tt.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
			if view.Error != tt.wantMsg {
				t.Fatalf("expected error %q, got %q", tt.wantMsg, view.Error)
			}
			if after := getLeaderboards(t, router).Body.String(); after != before {
				t.Fatalf("dataset changed after rejected result:\nbefore %s\nafter  %s", before, after)
			}
		})
	}
}

func TestPostResult_ZeroGoalsAreNotMissing(t *testing.T) {
	router := newMemoryRouter(t, config.AdminCredentials{})

	rec, view := postResult(t, router, resultBody("Starter", "T1", "T2", 0, 0), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, view.Error)
	}
}

func TestPostResult_RequiresAdminCredentials(t *testing.T) {
	router := newMemoryRouter(t, testAdmin)
	before := getLeaderboards(t, router).Body.String()

	for name, setAuth := range map[string]func(*http.Request){
		"missing":   nil,
		"incorrect": func(r *http.Request) { r.SetBasicAuth("admin", "wrong") },
	} {
		rec, view := postResult(t, router, resultBody("Starter", "T1", "T2", 2, 1), setAuth)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s credentials: expected status 401, got %d", name, rec.Code)
		}
		if view.Error != "Unauthorized" {
			t.Fatalf("%s credentials: unexpected error %q", name, view.Error)
		}
		if got := rec.Header().Get("WWW-Authenticate"); got != `Basic realm="Ortan Admin"` {
			t.Fatalf("%s credentials: unexpected challenge %q", name, got)
		}
	}
	if after := getLeaderboards(t, router).Body.String(); after != before {
		t.Fatalf("dataset changed after unauthorized result")
	}

	rec, view := postResult(t, router, resultBody("Starter", "T1", "T2", 2, 1), func(r *http.Request) {
		r.SetBasicAuth("admin", "s3cret")
	})
	if rec.Code != http.StatusOK || !view.Success {
		t.Fatalf("expected authorized result to succeed, got %d %+v", rec.Code, view)
	}
}

func TestLeaderboardEndpoints_StorageFailures(t *testing.T) {
	repo := leaderboardmock.NewRepository(t)
	router := newTestRouter(t, repo, config.AdminCredentials{})
	readErr := fmt.Errorf("%w: open data/leaderboards.json: no such file", leaderboard.ErrStorageRead)

	repo.On("Load", mock.Anything).Return(leaderboard.Dataset{}, readErr).Twice()

	rec := getLeaderboards(t, router)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"Failed to read leaderboards"`) || strings.Contains(body, "no such file") {
		t.Fatalf("unexpected body: %s", body)
	}

	postRec, view := postResult(t, router, resultBody("Starter", "T1", "T2", 1, 0), nil)
	if postRec.Code != http.StatusInternalServerError || view.Error != "Failed to post result" {
		t.Fatalf("unexpected response to failed load: %d %+v", postRec.Code, view)
	}
}

func TestPostResult_SaveFailure(t *testing.T) {
	repo := leaderboardmock.NewRepository(t)
	router := newTestRouter(t, repo, config.AdminCredentials{})

	repo.On("Load", mock.Anything).Return(starterOnlyDataset(), nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(fmt.Errorf("%w: disk full", leaderboard.ErrStorageWrite)).Once()

	rec, view := postResult(t, router, resultBody("Starter", "T1", "T2", 1, 0), nil)
	if rec.Code != http.StatusInternalServerError || view.Error != "Failed to post result" {
		t.Fatalf("unexpected response to failed save: %d %+v", rec.Code, view)
	}
}

func TestRouter_HealthzAndPreflight(t *testing.T) {
	router := newMemoryRouter(t, testAdmin)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected healthz response: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/result", nil))
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("preflight should bypass auth, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRouter_ServesStaticFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Ortan</h1>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	repo, err := memory.NewLeaderboardRepository(starterOnlyDataset())
	if err != nil {
		t.Fatalf("new memory repository: %v", err)
	}
	logger := logging.NewNop()
	router := NewRouter(NewHandler(usecase.NewLeaderboardService(repo, logger), logger), RouterOptions{
		CORSAllowedOrigins: []string{"*"},
		StaticDir:          dir,
	}, logger)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Ortan") {
		t.Fatalf("unexpected static response: %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboards", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "leaderboards") {
		t.Fatalf("api route shadowed by static files: %d", rec.Code)
	}
}

func TestRecoverPanic(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboards", nil).WithContext(context.Background()))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"Internal server error"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
