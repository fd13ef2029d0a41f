package topcinema

import (
	"bytes"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const (
	DefaultBaseURL = "https://web6.topcinema.cam"

	userAgent        = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:138.0) Gecko/20100101 Firefox/138.0"
	embedUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/244.178.44.111 Safari/537.36"
	embedAccept      = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	serverEndpoint   = "/wp-content/themes/movies2023/Ajaxat/Single/Server.php"
	defaultSearchMax = 5
)

type Session struct {
	Client  *resty.Client
	Cookies *cookiejar.Jar

	// 검색과 서버 목록 요청에 사용할 사이트 주소 (끝에 / 없이)
	BaseURL string
}

func NewSession() *Session {
	cookies, _ := cookiejar.New(&cookiejar.Options{})

	client := resty.New()
	client.SetCookieJar(cookies)
	client.SetHeader("User-Agent", userAgent)
	client.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
		switch {
		case r.StatusCode() == http.StatusNotFound:
			return errors.WithMessage(ErrNotFound, r.Request.URL)

		case r.StatusCode() >= http.StatusBadRequest:
			return errors.WithMessagef(ErrUnexpected, "%s 요청에 서버가 %d 상태 코드를 반환했습니다", r.Request.URL, r.StatusCode())

		// 차단됐거나 잘못된 요청이면 빈 본문이 돌아옴
		case len(r.Body()) < 1:
			return errors.WithMessage(ErrEmptyResponse, r.Request.URL)
		}

		return nil
	})

	return &Session{
		Client:  client,
		Cookies: cookies,
		BaseURL: DefaultBaseURL,
	}
}

// page 메소드는 주어진 주소의 페이지를 요청한 뒤 파싱합니다
func (session *Session) page(endpoint string, headers H) (*goquery.Document, error) {
	res, err := session.Client.R().
		SetHeaders(headers).
		Get(endpoint)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s 페이지 요청 중 오류가 발생했습니다", endpoint)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, errors.WithMessagef(err, "%s 페이지 파싱 중 오류가 발생했습니다", endpoint)
	}

	return doc, nil
}

// 임베드 페이지를 요청할 때 사이트에서 넘어온 것처럼 보이게 하는 헤더
func embedHeaders(referer string) H {
	return H{
		"User-Agent": embedUserAgent,
		"Referer":    referer,
		"Accept":     embedAccept,
	}
}

// origin 함수는 주소에서 스킴과 호스트만 남긴 값을 / 로 끝맺어 반환합니다
func origin(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return ""
	}

	return u.Scheme + "://" + u.Host + "/"
}
