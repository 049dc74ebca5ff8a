package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shivansh.dev/internal/config"
	"shivansh.dev/internal/models"
	"shivansh.dev/internal/services"
	"shivansh.dev/internal/thumbnail"
)

type testServer struct {
	handler  http.Handler
	sessions *services.SessionStore
}

func newTestServer(t *testing.T, delay time.Duration) *testServer {
	t.Helper()
	return newTestServerWith(t, delay, []models.Project{
		{Category: "Games", Title: "Seas of Yore", Media: []models.Media{{Type: models.MediaImage, Src: "/media/seas.png"}}},
		{Category: "Web", Title: "Site Selector", Media: []models.Media{{Type: models.MediaVideo, Src: "/media/site-selector.mp4"}}},
		{Category: "Games", Title: "Javarominoes"},
	})
}

func newTestServerWith(t *testing.T, delay time.Duration, projects []models.Project) *testServer {
	t.Helper()

	static := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(static, "media"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<html>app</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(static, "media", "seas.png"), []byte("png"), 0644))

	cfg := config.DefaultConfig()
	cfg.Data.StaticDir = static
	cfg.Projects = &models.ProjectList{Projects: projects}
	cfg.Site = &models.SiteContent{Hero: models.Hero{Name: "Shivansh Saini"}, Nav: models.DefaultNav()}

	ps := services.NewProjectService(cfg.Projects)
	store := services.NewSessionStore(ps, services.ShowcaseDefaults{Autoplay: true, Delay: delay, Loop: true})
	return &testServer{
		handler:  SetupRoutes(cfg, ps, store, zap.NewNop()),
		sessions: store,
	}
}

func (s *testServer) do(t *testing.T, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) services.SessionView {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var v services.SessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestListProjects(t *testing.T) {
	s := newTestServer(t, time.Second)

	rec := s.do(t, http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 3)

	rec = s.do(t, http.MethodGet, "/api/projects?category=Games", "")
	var games []models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &games))
	assert.Len(t, games, 2)

	rec = s.do(t, http.MethodGet, "/api/projects?category=Robotics", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetProject(t *testing.T) {
	s := newTestServer(t, time.Second)

	rec := s.do(t, http.MethodGet, "/api/projects/seas-of-yore", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Seas of Yore", p.Title)

	rec = s.do(t, http.MethodGet, "/api/projects/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Project not found"}`, rec.Body.String())
}

func TestGetProject_DerivedPoster(t *testing.T) {
	s := newTestServer(t, time.Second)

	rec := s.do(t, http.MethodGet, "/api/projects/site-selector", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Len(t, p.Media, 1)
	assert.Equal(t, "/media/thumbnail-site-selector.jpg", p.Media[0].Poster)

	rec = s.do(t, http.MethodGet, "/api/projects?category=Web", "")
	assert.Contains(t, rec.Body.String(), `"poster":"/media/thumbnail-site-selector.jpg"`)
}

func TestListCategoriesAndSite(t *testing.T) {
	s := newTestServer(t, time.Second)

	rec := s.do(t, http.MethodGet, "/api/categories", "")
	assert.JSONEq(t, `["Games","Web"]`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/site", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Shivansh Saini")
}

func TestGenerateThumbnails(t *testing.T) {
	s := newTestServer(t, time.Second)
	want, err := json.Marshal(thumbnail.FallbackInstructions())
	require.NoError(t, err)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rec := s.do(t, method, "/api/generate-thumbnails", "")
		assert.Equal(t, http.StatusOK, rec.Code, method)
		assert.JSONEq(t, string(want), rec.Body.String(), method)
	}
}

func TestHealth(t *testing.T) {
	rec := newTestServer(t, time.Second).do(t, http.MethodGet, "/api/health", "")
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatic(t *testing.T) {
	s := newTestServer(t, time.Second)

	rec := s.do(t, http.MethodGet, "/media/seas.png", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/media/gone.mp4", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/projects/seas-of-yore", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app")
}

func TestSession_CategoryToggle(t *testing.T) {
	s := newTestServer(t, time.Second)

	rec := s.do(t, http.MethodGet, "/api/session/", "")
	v := decodeView(t, rec)
	cookie := sessionCookie(t, rec)
	assert.Len(t, v.Projects, 3)

	v = decodeView(t, s.do(t, http.MethodPost, "/api/session/category", `{"category":"Games"}`, cookie))
	assert.Equal(t, "Games", v.Filter.Active)
	assert.Len(t, v.Projects, 2)
	assert.Equal(t, 2, v.Carousel.Len)

	v = decodeView(t, s.do(t, http.MethodPost, "/api/session/category", `{"category":"Games"}`, cookie))
	assert.Empty(t, v.Filter.Active)
	assert.Len(t, v.Projects, 3)

	v = decodeView(t, s.do(t, http.MethodPost, "/api/session/category", `{"category":"Robotics"}`, cookie))
	assert.Empty(t, v.Projects)

	assert.Equal(t, 1, s.sessions.Len(), "the cookie keeps one session")

	rec = s.do(t, http.MethodPost, "/api/session/category", `not json`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSession_CarouselActions(t *testing.T) {
	s := newTestServer(t, time.Second)
	cookie := sessionCookie(t, s.do(t, http.MethodGet, "/api/session/", ""))

	v := decodeView(t, s.do(t, http.MethodPost, "/api/session/carousel/next", "", cookie))
	assert.Equal(t, 1, v.Carousel.Index)

	v = decodeView(t, s.do(t, http.MethodPost, "/api/session/carousel/goto?index=2", "", cookie))
	assert.Equal(t, 2, v.Carousel.Index)

	v = decodeView(t, s.do(t, http.MethodPost, "/api/session/carousel/next", "", cookie))
	assert.Equal(t, 0, v.Carousel.Index, "loop wraps")

	v = decodeView(t, s.do(t, http.MethodPost, "/api/session/carousel/swipe", `{"start_x":100,"end_x":300}`, cookie))
	assert.Equal(t, 2, v.Carousel.Index, "right swipe goes back")

	v = decodeView(t, s.do(t, http.MethodPost, "/api/session/carousel/hover?on=true", "", cookie))
	assert.True(t, v.Paused)
	v = decodeView(t, s.do(t, http.MethodPost, "/api/session/carousel/hover?on=false", "", cookie))
	assert.False(t, v.Paused)

	v = decodeView(t, s.do(t, http.MethodPost, "/api/session/carousel/modal", "", cookie))
	assert.True(t, v.Carousel.ModalOpen)

	rec := s.do(t, http.MethodPost, "/api/session/carousel/goto?index=9", "", cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/session/carousel/spin", "", cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSession_Prefs(t *testing.T) {
	s := newTestServer(t, time.Second)
	cookie := sessionCookie(t, s.do(t, http.MethodGet, "/api/session/", ""))

	v := decodeView(t, s.do(t, http.MethodPost, "/api/session/prefs/theme", "", cookie))
	assert.Equal(t, models.ThemeLight, v.Preferences.Theme)

	v = decodeView(t, s.do(t, http.MethodPost, "/api/session/prefs/reduced-motion", "", cookie))
	assert.True(t, v.Preferences.ReducedMotion)

	rec := s.do(t, http.MethodPost, "/api/session/prefs/font", "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSession_AutoplayStream(t *testing.T) {
	s := newTestServer(t, 10*time.Millisecond)
	srv := httptest.NewServer(s.handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/session/autoplay", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	var data []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() && len(data) < 3 {
		if line := scanner.Text(); strings.HasPrefix(line, "data: ") {
			data = append(data, strings.TrimPrefix(line, "data: "))
		}
	}
	require.Len(t, data, 3)
	assert.Equal(t, "0", data[0], "stream opens with the current slide")
	for _, d := range data[1:] {
		assert.Contains(t, []string{"0", "1", "2"}, d)
	}
}

func TestSession_AutoplayStreamsShareTicker(t *testing.T) {
	const delay = 10 * time.Millisecond
	projects := make([]models.Project, 500)
	for i := range projects {
		projects[i] = models.Project{Category: "Games", Title: fmt.Sprintf("Project %d", i)}
	}
	s := newTestServerWith(t, delay, projects)
	srv := httptest.NewServer(s.handler)
	defer srv.Close()

	cookie := sessionCookie(t, s.do(t, http.MethodGet, "/api/session/", ""))
	session, err := s.sessions.Get(cookie.Value)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	events := make([]int, 2)
	for i := range events {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/session/autoplay", nil)
		require.NoError(t, err)
		req.AddCookie(cookie)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer resp.Body.Close()
			scanner := bufio.NewScanner(resp.Body)
			for scanner.Scan() {
				if strings.HasPrefix(scanner.Text(), "data: ") {
					events[i]++
				}
			}
		}()
	}

	time.Sleep(20 * delay)
	cancel()
	wg.Wait()
	require.Eventually(t, func() bool { return !session.Streaming() }, 2*time.Second, time.Millisecond)
	elapsed := time.Since(start)

	for i, n := range events {
		assert.Greater(t, n, 1, "stream %d saw autoplay steps", i)
	}
	index := session.View(services.NewProjectService(&models.ProjectList{Projects: projects})).Carousel.Index
	assert.Greater(t, index, 0)
	assert.LessOrEqual(t, index, int(elapsed/delay), "one step per delay however many streams are open")
}
