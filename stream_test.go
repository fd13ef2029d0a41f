package topcinema_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toriato/topcinema"
)

func TestStreams(t *testing.T) {
	session := newSession()

	// 알 수 없는 제공자(okru), 없는 임베드(broken-updown), 빈 응답(missing) 서버는 건너뛰어야함
	streams, err := session.Streams(testserver.URL + "/film/movie-one/")
	require.NoError(t, err)

	assert.Equal(t, []topcinema.Stream{
		{Name: "TopCinema - UpDown", Title: "UpDown Quality", URL: "https://cdn.example/videos/master.m3u8"},
		{Name: "TopCinema - StreamWish", Title: "StreamWish Quality", URL: "https://cdn.example/hls2/abc123/master.m3u8"},
		{Name: "TopCinema - VidHide", Title: "VidHide Quality", URL: "https://vh.example/hls2/xyz/index.m3u8"},
		{Name: "TopCinema - FileMoon", Title: "FileMoon Quality", URL: "https://fm.example/stream.m3u8"},
		{Name: "TopCinema - SendVid", Title: "SendVid Quality", URL: "https://sendvid.example/v/clip.mp4"},
	}, streams)

	// 임베드 페이지는 사이트에서 넘어온 것처럼 요청해야함
	raw, ok := testheaders.Load("/embed/updown")
	require.True(t, ok)
	header := raw.(http.Header)
	assert.Equal(t, testserver.URL+"/", header.Get("Referer"))
	assert.Contains(t, header.Get("User-Agent"), "Chrome")

	// FileMoon 플레이어는 임베드 페이지 주소를 레퍼러로 사용해야함
	raw, ok = testheaders.Load("/embed/filemoon-player")
	require.True(t, ok)
	assert.Equal(t, testserver.URL+"/", raw.(http.Header).Get("Referer"))

	for _, stream := range streams {
		t.Logf("%s: %s", stream.Name, stream.URL)
	}
}

func TestStreamsNoWatchLink(t *testing.T) {
	session := newSession()

	_, err := session.Streams(testserver.URL + "/episode/1-1/")
	assert.ErrorIs(t, err, topcinema.ErrNoStream)
}

func TestStreamsNotFound(t *testing.T) {
	session := newSession()

	_, err := session.Streams(testserver.URL + "/episode/nowhere/")
	assert.ErrorIs(t, err, topcinema.ErrNotFound)
}
