package topcinema

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

type Stream struct {
	Name  string
	Title string
	URL   string
}

type server struct {
	ID     string
	Server string
}

// Streams 메소드는 회차 페이지에서 재생 가능한 스트림 주소를 모두 가져옵니다
//
// 서버 목록의 각 서버마다 임베드 주소를 받아와 알맞은 제공자로 스트림 주소를 뽑아냅니다.
// 알 수 없는 제공자이거나 주소를 뽑아내지 못한 서버는 건너뜁니다
func (session *Session) Streams(href string) ([]Stream, error) {
	doc, err := session.page(href, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "회차 페이지 요청 중 오류가 발생했습니다")
	}

	watch := strings.TrimSpace(doc.Find("a.watch").AttrOr("href", ""))
	if watch == "" {
		return nil, errors.WithMessage(ErrNoStream, "회차 페이지에 시청 링크가 없습니다")
	}

	doc, err = session.page(watch, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "시청 페이지 요청 중 오류가 발생했습니다")
	}

	servers := []server{}
	doc.Find("li[data-id][data-server]").Each(func(_ int, s *goquery.Selection) {
		servers = append(servers, server{
			ID:     s.AttrOr("data-id", ""),
			Server: s.AttrOr("data-server", ""),
		})
	})

	streams := []Stream{}

	for _, server := range servers {
		embed, err := session.embed(server)
		if err != nil {
			continue
		}

		provider := findProvider(embed)
		if provider == nil {
			continue
		}

		url, err := provider.extract(session, embed)
		if err != nil {
			continue
		}

		streams = append(streams, Stream{
			Name:  "TopCinema - " + provider.Name,
			Title: provider.Name + " Quality",
			URL:   url,
		})
	}

	return streams, nil
}

// embed 메소드는 서버 번호로 임베드 iframe 주소를 요청합니다
func (session *Session) embed(server server) (string, error) {
	res, err := session.Client.R().
		SetHeaders(H{
			"Origin":           session.BaseURL,
			"Referer":          session.BaseURL + "/",
			"X-Requested-With": "XMLHttpRequest",
		}).
		SetFormData(H{
			"id": server.ID,
			"i":  server.Server,
		}).
		Post(session.BaseURL + serverEndpoint)
	if err != nil {
		return "", errors.WithMessage(err, "서버 임베드 주소 요청 중 오류가 발생했습니다")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return "", errors.WithMessage(err, "서버 임베드 응답 파싱 중 오류가 발생했습니다")
	}

	src := strings.TrimSpace(doc.Find("iframe[src]").First().AttrOr("src", ""))
	if src == "" {
		return "", errors.WithMessagef(ErrNoStream, "%s 서버 응답에 iframe 이 없습니다", server.ID)
	}

	return src, nil
}
