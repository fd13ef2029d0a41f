package topcinema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

type Result struct {
	Title string // 정리된 제목과 연도, 예) "제목 (2023)"
	Href  string
	Image string
	Year  string
	Type  ContentType
}

type ContentType int

const (
	Movie ContentType = iota
	Series
)

func (t ContentType) String() string {
	switch t {
	case Series:
		return "series"
	default:
		return "movie"
	}
}

// ID 메소드는 제목과 연도로 만든 작품 식별자를 반환합니다
func (result Result) ID() string {
	return "tc" + patternIDUnsafe.ReplaceAllString(strings.ToLower(result.Title), "") + result.Year
}

// Search 메소드는 검색어로 작품을 찾습니다
//
// 1 페이지부터 pages 페이지까지 차례로 불러오며 존재하지 않는 페이지를 만나면 멈춥니다.
// 회차 표기를 지운 제목이 같은 작품은 처음 나온 것만 남깁니다
func (session *Session) Search(keyword string, pages int) ([]Result, error) {
	if pages < 1 {
		pages = defaultSearchMax
	}

	results := []Result{}
	seen := map[string]bool{}

	for page := 1; page <= pages; page++ {
		res, err := session.Client.R().
			SetQueryParams(H{
				"query":  keyword,
				"type":   "all",
				"offset": strconv.Itoa(page),
			}).
			Get(session.BaseURL + "/search/")
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				break
			}

			return nil, errors.WithMessagef(err, "검색 결과 %d 페이지 요청 중 오류가 발생했습니다", page)
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
		if err != nil {
			return nil, errors.WithMessagef(err, "검색 결과 %d 페이지 파싱 중 오류가 발생했습니다", page)
		}

		doc.Find("a[href][title]").Each(func(_ int, s *goquery.Selection) {
			image := s.Find("img[data-src]").First().AttrOr("data-src", "")

			// 포스터와 연도가 없는 링크는 작품이 아님
			details := s.Find("ul.liList > li")
			if image == "" || details.Length() < 2 {
				return
			}

			title := cleanTitle(s.AttrOr("title", ""))
			if title == "" || seen[title] {
				return
			}

			seen[title] = true

			year := strings.TrimSpace(details.Eq(1).Text())
			results = append(results, Result{
				Title: fmt.Sprintf("%s (%s)", title, year),
				Href:  strings.TrimSpace(s.AttrOr("href", "")),
				Image: strings.TrimSpace(image),
				Year:  year,
				Type:  contentType(title),
			})
		})
	}

	return results, nil
}
