package topcinema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/toriato/topcinema"
)

func TestNewSession(t *testing.T) {
	session := topcinema.NewSession()

	assert.Equal(t, topcinema.DefaultBaseURL, session.BaseURL)
	assert.NotNil(t, session.Cookies)
	assert.Contains(t, session.Client.Header.Get("User-Agent"), "Firefox")
}

func TestSessionResponseHook(t *testing.T) {
	session := newSession()

	// 정상 페이지는 오류를 반환해선 안됨
	_, err := session.Client.R().Get(testserver.URL + "/film/movie-one/")
	assert.NoError(t, err)

	_, err = session.Client.R().Get(testserver.URL + "/status/404")
	assert.ErrorIs(t, err, topcinema.ErrNotFound)

	_, err = session.Client.R().Get(testserver.URL + "/status/500")
	assert.ErrorIs(t, err, topcinema.ErrUnexpected)

	// 상태 코드가 정상이어도 본문이 비었다면 오류를 반환해야함
	_, err = session.Client.R().Get(testserver.URL + "/status/empty")
	assert.ErrorIs(t, err, topcinema.ErrEmptyResponse)
}
