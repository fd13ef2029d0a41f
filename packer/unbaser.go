package packer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

const (
	alphabet62 = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alphabet95 = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"
)

// Unbaser 구조는 특정 진법으로 인코딩된 토큰을 정수로 되돌립니다
type Unbaser struct {
	base uint64

	// 2~36 진법은 위치 기반으로 해석하므로 nil
	dictionary *[256]int16
}

// NewUnbaser 함수는 주어진 진법에 맞는 Unbaser 를 만듭니다
//
// 2~36 진법은 0-9, a-z 순서의 위치 기반 해석을, 62 와 95 진법은 정해진 알파벳을,
// 37~61 진법은 62 진법 알파벳의 앞부분을 잘라 사용합니다. 그 외의 진법은 정의된
// 알파벳이 없으므로 ErrUnsupportedRadix 를 반환합니다
func NewUnbaser(base int) (*Unbaser, error) {
	var alphabet string

	switch {
	case 2 <= base && base <= 36:
		return &Unbaser{base: uint64(base)}, nil
	case base == 62:
		alphabet = alphabet62
	case base == 95:
		alphabet = alphabet95
	case 36 < base && base < 62:
		alphabet = alphabet62[:base]
	default:
		return nil, errors.WithMessagef(ErrUnsupportedRadix, "%d 진법", base)
	}

	return &Unbaser{
		base:       uint64(base),
		dictionary: dictionary(alphabet),
	}, nil
}

// 알파벳의 각 문자를 순서 값으로 대응시킨 표를 만듭니다
// 알파벳은 모두 패키지 상수이므로 중복 문자는 프로그램 결함으로 보고 panic 합니다
func dictionary(alphabet string) *[256]int16 {
	d := &[256]int16{}
	for i := range d {
		d[i] = -1
	}

	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if d[c] >= 0 {
			panic(fmt.Sprintf("packer: 알파벳에 중복된 문자 %q 가 있습니다", c))
		}

		d[c] = int16(i)
	}

	return d
}

// Base 메소드는 사용 중인 진법을 반환합니다
func (unbaser *Unbaser) Base() int {
	return int(unbaser.base)
}

// Unbase 메소드는 토큰을 정수로 해석합니다
//
// 알파벳에 없는 문자가 있거나 값이 uint64 범위를 넘어서면 ErrTokenDecode 를 반환합니다
func (unbaser *Unbaser) Unbase(token string) (uint64, error) {
	if token == "" {
		return 0, errors.WithMessage(ErrTokenDecode, "빈 토큰입니다")
	}

	if unbaser.dictionary == nil {
		value, err := strconv.ParseUint(token, int(unbaser.base), 64)
		if err != nil {
			return 0, errors.WithMessagef(ErrTokenDecode, "%d 진법 토큰 %q: %s", unbaser.base, token, err)
		}

		return value, nil
	}

	var value uint64

	for i := 0; i < len(token); i++ {
		digit := unbaser.dictionary[token[i]]
		if digit < 0 {
			return 0, errors.WithMessagef(ErrTokenDecode, "%d 진법 토큰 %q 에 알파벳에 없는 문자 %q 가 있습니다", unbaser.base, token, token[i])
		}

		// value*base+digit 가 넘치기 전에 멈추기
		if value > (math.MaxUint64-uint64(digit))/unbaser.base {
			return 0, errors.WithMessagef(ErrTokenDecode, "%d 진법 토큰 %q 의 값이 너무 큽니다", unbaser.base, token)
		}

		value = value*unbaser.base + uint64(digit)
	}

	return value, nil
}
