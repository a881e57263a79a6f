package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

var csrfRe = regexp.MustCompile(`name="csrf" value="([0-9a-f]{32})"`)

func newTestAPI(t *testing.T) *API {
	t.Helper()

	gin.SetMode(gin.TestMode)

	viper.Set("app.log_level", "error")
	viper.Set("site.title", "Test Event")
	viper.Set("site.account_text", "Bank 111-11-111111")
	viper.Set("session.secret", "test-secret")
	viper.Set("admin.password", "hunter2")
	viper.Set("database.dsn", filepath.Join(t.TempDir(), "test.db"))
	viper.Set("guestbook.blocked_words", []string{"casino", "scam"})
	viper.Set("guestbook.post_limit", 3)
	viper.Set("guestbook.post_window_seconds", 60)
	viper.Set("ratelimit.rps", 1000)
	viper.Set("ratelimit.burst", 1000)

	a, err := NewRouter()
	require.NoError(t, err)

	return a
}

// jar is a minimal cookie jar so a test can act like one browser
// across several requests
type jar struct {
	cookies map[string]*http.Cookie
}

func newJar() *jar {
	return &jar{cookies: map[string]*http.Cookie{}}
}

func (j *jar) update(w *httptest.ResponseRecorder) {
	for _, ck := range w.Result().Cookies() {
		j.cookies[ck.Name] = ck
	}
}

func (j *jar) get(t *testing.T, a *API, path string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range j.cookies {
		req.AddCookie(ck)
	}

	a.Router.ServeHTTP(w, req)
	j.update(w)
	return w
}

func (j *jar) post(t *testing.T, a *API, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range j.cookies {
		req.AddCookie(ck)
	}

	a.Router.ServeHTTP(w, req)
	j.update(w)
	return w
}

// openSession loads a guestbook page to establish a session and
// returns the CSRF token embedded in the form
func openSession(t *testing.T, a *API, j *jar) string {
	t.Helper()

	w := j.get(t, a, "/tromperie")
	require.Equal(t, http.StatusOK, w.Code)

	m := csrfRe.FindStringSubmatch(w.Body.String())
	require.Len(t, m, 2, "guestbook page should embed a CSRF token")
	return m[1]
}

func toStr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func submission(name, message, redirect, website, csrf string) url.Values {
	return url.Values{
		"name":     {name},
		"message":  {message},
		"redirect": {redirect},
		"website":  {website},
		"csrf":     {csrf},
	}
}
