package topcinema

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

type provider struct {
	Name    string
	Keyword string // 임베드 주소에 이 단어가 있으면 이 제공자로 처리

	extract func(session *Session, embed string) (string, error)
}

var (
	providers = []provider{
		{"UpDown", "updown", extractPackedFile},
		{"StreamWish", "streamwish", extractPackedHLS},
		{"VidHide", "vidhide", extractPackedHLS},
		{"FileMoon", "filemoon", extractFileMoon},
		{"SendVid", "sendvid", extractSendVid},
	}

	patternFile        = regexp.MustCompile(`file:\s*"([^"]+)"`)
	patternHLS         = regexp.MustCompile(`https://[^"'\s]+/hls2/[^"'\s]+`)
	patternVideoSource = regexp.MustCompile(`var\s+video_source\s*=\s*"([^"]+)"`)
)

func findProvider(embed string) *provider {
	for i := range providers {
		if strings.Contains(embed, providers[i].Keyword) {
			return &providers[i]
		}
	}

	return nil
}

func (session *Session) embedPage(embed, referer string) (*goquery.Document, error) {
	doc, err := session.page(embed, embedHeaders(referer))
	if err != nil {
		return nil, errors.WithMessage(err, "임베드 페이지 요청 중 오류가 발생했습니다")
	}

	return doc, nil
}

// 압축된 스크립트 속 file:"..." 값
func extractPackedFile(session *Session, embed string) (string, error) {
	doc, err := session.embedPage(embed, session.BaseURL+"/")
	if err != nil {
		return "", err
	}

	script, err := unpackScript(doc)
	if err != nil {
		return "", err
	}

	matches := patternFile.FindStringSubmatch(script)
	if len(matches) != 2 {
		return "", errors.WithMessage(ErrNoStream, "해제된 스크립트에 file 값이 없습니다")
	}

	return strings.TrimSpace(matches[1]), nil
}

// 압축된 스크립트 속 첫번째 /hls2/ 주소
func extractPackedHLS(session *Session, embed string) (string, error) {
	doc, err := session.embedPage(embed, session.BaseURL+"/")
	if err != nil {
		return "", err
	}

	script, err := unpackScript(doc)
	if err != nil {
		return "", err
	}

	url := patternHLS.FindString(script)
	if url == "" {
		return "", errors.WithMessage(ErrNoStream, "해제된 스크립트에 hls2 주소가 없습니다")
	}

	return url, nil
}

// FileMoon 은 임베드 페이지가 한번 더 iframe 으로 플레이어를 감싸고 있음
func extractFileMoon(session *Session, embed string) (string, error) {
	doc, err := session.embedPage(embed, session.BaseURL+"/")
	if err != nil {
		return "", err
	}

	player := strings.TrimSpace(doc.Find("iframe[src]").First().AttrOr("src", ""))
	if player == "" {
		return "", errors.WithMessage(ErrNoStream, "FileMoon 임베드 페이지에 iframe 이 없습니다")
	}

	doc, err = session.embedPage(player, origin(embed))
	if err != nil {
		return "", err
	}

	script, err := unpackScript(doc)
	if err != nil {
		return "", err
	}

	matches := patternFile.FindStringSubmatch(script)
	if len(matches) != 2 {
		return "", errors.WithMessage(ErrNoStream, "해제된 스크립트에 file 값이 없습니다")
	}

	return matches[1], nil
}

// 압축 없이 페이지에 있는 var video_source = "..." 값
func extractSendVid(session *Session, embed string) (string, error) {
	doc, err := session.embedPage(embed, session.BaseURL+"/")
	if err != nil {
		return "", err
	}

	matches := patternVideoSource.FindStringSubmatch(doc.Find("script").Text())
	if len(matches) != 2 {
		return "", errors.WithMessage(ErrNoStream, "SendVid 페이지에 video_source 값이 없습니다")
	}

	return matches[1], nil
}
