package topcinema

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

type Episode struct {
	Href   string
	Number int
	Season int
}

// Episodes 메소드는 작품 페이지에서 회차 목록을 가져옵니다
//
// 시리즈라면 모든 시즌 페이지를 돌며 회차를 모으고(불러오지 못한 시즌은 건너뜀), 영화라면 작품 페이지를 1 시즌 1 화로 반환합니다.
// 사이트가 최신 회차부터 나열하므로 모은 순서를 뒤집어 반환합니다
func (session *Session) Episodes(href string) ([]Episode, error) {
	doc, err := session.page(href, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "작품 페이지 요청 중 오류가 발생했습니다")
	}

	episodes := []Episode{}

	if isSeriesURL(href) {
		seasons := []string{}
		doc.Find("div.Small--Box.Season > a[href]").Each(func(_ int, s *goquery.Selection) {
			seasons = append(seasons, strings.TrimSpace(s.AttrOr("href", "")))
		})

		for i, season := range seasons {
			// 불러오지 못한 시즌은 건너뛰고 나머지 시즌의 회차는 그대로 반환하기
			doc, err := session.page(season, nil)
			if err != nil {
				continue
			}

			doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
				if s.Find("div.image").Length() == 0 {
					return
				}

				// <div class="epnum"><span>الحلقة</span>12</div> 에서 숫자만 가져오기
				epnum := s.Find(".epnum").First()
				text := strings.Replace(epnum.Text(), epnum.Find("span").Text(), "", 1)

				number, err := strconv.Atoi(strings.TrimSpace(text))
				if err != nil {
					return
				}

				episodes = append(episodes, Episode{
					Href:   strings.TrimSpace(s.AttrOr("href", "")),
					Number: number,
					Season: i + 1,
				})
			})
		}
	} else if doc.Find("a.watch[href]").Length() > 0 {
		// Streams 가 시청 링크를 다시 찾아가므로 작품 페이지 주소를 그대로 사용하기
		episodes = append(episodes, Episode{
			Href:   href,
			Number: 1,
			Season: 1,
		})
	}

	for i, j := 0, len(episodes)-1; i < j; i, j = i+1, j-1 {
		episodes[i], episodes[j] = episodes[j], episodes[i]
	}

	return episodes, nil
}
