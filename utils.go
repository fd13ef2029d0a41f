package topcinema

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/toriato/topcinema/packer"
)

var (
	seriesURLKeywords = []string{"مسلسل", "الموسم", "الحلقة"}
	animeKeywords     = []string{"انمي", "anime"}
	seriesKeywords    = []string{"مسلسل", "series", "موسم"}

	patternEpisodeMarker = regexp.MustCompile(`(?i)الحلقة\s*\d+(\.\d+)?(-\d+)?`)
	patternFinalMarker   = regexp.MustCompile(`(?i)والاخيرة`)
	patternSpaces        = regexp.MustCompile(`\s+`)
	patternIDUnsafe      = regexp.MustCompile(`[^a-z0-9]`)
)

// cleanTitle 함수는 제목에서 "الحلقة 12" 같은 회차 표기와 "والاخيرة"(마지막화) 표기를 지웁니다
func cleanTitle(title string) string {
	title = patternEpisodeMarker.ReplaceAllString(title, "")
	title = patternFinalMarker.ReplaceAllString(title, "")
	title = patternSpaces.ReplaceAllString(title, " ")

	return strings.TrimSpace(title)
}

func contentType(title string) ContentType {
	title = strings.ToLower(title)

	for _, keywords := range [][]string{animeKeywords, seriesKeywords} {
		for _, keyword := range keywords {
			if strings.Contains(title, keyword) {
				return Series
			}
		}
	}

	return Movie
}

// isSeriesURL 함수는 작품 주소에 시리즈 관련 단어가 들어있는지 확인합니다
func isSeriesURL(href string) bool {
	if unescaped, err := url.PathUnescape(href); err == nil {
		href = unescaped
	}

	for _, keyword := range seriesURLKeywords {
		if strings.Contains(href, keyword) {
			return true
		}
	}

	return false
}

// unpackScript 함수는 페이지에서 p.a.c.k.e.r. 로 압축된 스크립트를 찾아 해제합니다
func unpackScript(doc *goquery.Document) (string, error) {
	var source string

	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := s.Text(); packer.Detect(text) {
			source = text
			return false
		}

		return true
	})

	if source == "" {
		return "", errors.WithMessage(ErrNoStream, "페이지에서 압축된 스크립트를 찾을 수 없습니다")
	}

	unpacked, err := packer.Unpack(source)
	if err != nil {
		return "", errors.WithMessage(err, "압축된 스크립트 해제 중 오류가 발생했습니다")
	}

	return unpacked, nil
}
