package topcinema_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/toriato/topcinema"
)

var (
	testserver *httptest.Server

	// 임베드 페이지 요청에 함께 온 헤더
	testheaders sync.Map

	routes = map[string]string{
		"/film/movie-one/":        "movie.html",
		"/series/مسلسل-الاختبار/": "series.html",
		"/series/مسلسل-ناقص/":     "series-partial.html",
		"/season/1/":              "season-1.html",
		"/season/2/":              "season-2.html",
		"/watch/movie-one/":       "watch.html",
		"/episode/1-1/":           "episode.html",
		"/embed/updown":           "embed/updown.html",
		"/embed/streamwish":       "embed/streamwish.html",
		"/embed/vidhide":          "embed/vidhide.html",
		"/embed/filemoon":         "embed/filemoon.html",
		"/embed/filemoon-player":  "embed/filemoon-player.html",
		"/embed/sendvid":          "embed/sendvid.html",
	}
)

func TestMain(m *testing.M) {
	testserver = httptest.NewServer(http.HandlerFunc(handle))

	code := m.Run()
	testserver.Close()
	os.Exit(code)
}

func handle(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/embed/") {
		testheaders.Store(r.URL.Path, r.Header.Clone())
	}

	if strings.HasPrefix(r.URL.Path, "/status/500") {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "internal server error")
		return
	}

	switch r.URL.Path {
	case "/search/":
		serve(w, r, fmt.Sprintf("search-%s.html", r.URL.Query().Get("offset")))

	case "/wp-content/themes/movies2023/Ajaxat/Single/Server.php":
		if r.Method != http.MethodPost || r.Header.Get("X-Requested-With") != "XMLHttpRequest" || r.FormValue("id") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// 본문 없이 응답하기
		if r.FormValue("i") == "missing" {
			return
		}

		fmt.Fprintf(w, `<iframe src="%s/embed/%s" frameborder="0"></iframe>`, testserver.URL, r.FormValue("i"))

	case "/status/empty":
		w.WriteHeader(http.StatusOK)

	default:
		name, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}

		serve(w, r, name)
	}
}

// serve 함수는 testdata 속 파일의 {{host}} 를 테스트 서버 주소로 바꿔 응답합니다
func serve(w http.ResponseWriter, r *http.Request, name string) {
	raw, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, strings.ReplaceAll(string(raw), "{{host}}", testserver.URL))
}

func newSession() *topcinema.Session {
	session := topcinema.NewSession()
	session.BaseURL = testserver.URL

	return session
}
