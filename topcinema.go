// Package topcinema 는 TopCinema 사이트에서 작품을 검색하고 회차별 스트림 주소를 가져옵니다
package topcinema

import "github.com/pkg/errors"

type H = map[string]string

var (
	ErrUnexpected    = errors.New("예측하지 못한 결과가 발생했습니다")
	ErrNotFound      = errors.New("찾을 수 없거나 존재하지 않습니다")
	ErrEmptyResponse = errors.New("서버가 빈 응답을 반환했습니다")
	ErrNoStream      = errors.New("스트림 주소를 찾을 수 없습니다")
)
