// Package packer 는 Dean Edwards 의 p.a.c.k.e.r. 로 압축된 자바스크립트를 원래 코드로 되돌립니다
//
// 압축된 스크립트는 페이로드, 진법, 심볼 개수, 심볼 테이블 네 값을 인자로 받는
// eval(function(p,a,c,k,e,d){...}(...)) 형태를 가집니다. 이 패키지는 스크립트를 실행하지 않고
// 페이로드 속 토큰을 심볼 테이블 값으로 바꿔 넣는 방식으로 동작합니다
package packer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrUnrecognizedStructure = errors.New("p.a.c.k.e.r. 구조를 인식할 수 없습니다")
	ErrSymbolTableMismatch   = errors.New("p.a.c.k.e.r. 심볼 테이블 길이가 선언된 개수와 다릅니다")
	ErrUnsupportedRadix      = errors.New("지원하지 않는 p.a.c.k.e.r. 인코딩입니다")
	ErrTokenDecode           = errors.New("p.a.c.k.e.r. 토큰을 해석할 수 없습니다")

	// 인자가 모두 남아있는 형태를 먼저 시도하고 뒷부분이 잘린 형태를 나중에 시도하기
	patternJuicers = []*regexp.Regexp{
		regexp.MustCompile(`(?s)}\('(?P<payload>.*)', *(?P<radix>\d+|\[\]), *(?P<count>\d+), *'(?P<symtab>.*)'\.split\('\|'\), *(\d+), *(.*)\)\)`),
		regexp.MustCompile(`(?s)}\('(?P<payload>.*)', *(?P<radix>\d+|\[\]), *(?P<count>\d+), *'(?P<symtab>.*)'\.split\('\|'\)`),
	}

	patternPrologue = regexp.MustCompile(`eval\s*\(\s*function\s*\(\s*p\s*,\s*a\s*,\s*c\s*,\s*k\s*,\s*e\s*,`)
	patternWord     = regexp.MustCompile(`\b\w+\b`)
	patternStrings  = regexp.MustCompile(`(?s)var *(_\w+)=\["(.*?)"\];`)
	patternDigits   = regexp.MustCompile(`^\d+`)
)

// Packed 구조는 압축된 스크립트에서 뽑아낸 네 인자를 담습니다
type Packed struct {
	Payload string
	Radix   int
	Count   int
	Symbols []string
}

// Detect 함수는 주어진 코드에 p.a.c.k.e.r. 로 압축된 스크립트가 있는지 확인합니다
func Detect(source string) bool {
	return patternPrologue.MatchString(source)
}

// Unpack 함수는 압축된 스크립트를 원래 코드로 되돌립니다
func Unpack(source string) (string, error) {
	packed, err := Parse(source)
	if err != nil {
		return "", err
	}

	return packed.Unpack()
}

// Parse 함수는 압축된 스크립트에서 페이로드, 진법, 개수와 심볼 테이블을 뽑아냅니다
func Parse(source string) (*Packed, error) {
	for _, juicer := range patternJuicers {
		matches := juicer.FindStringSubmatch(source)
		if matches == nil {
			continue
		}

		packed := &Packed{
			Payload: matches[juicer.SubexpIndex("payload")],
			Symbols: strings.Split(matches[juicer.SubexpIndex("symtab")], "|"),
		}

		// 진법 자리에 빈 배열이 들어가 있다면 62 진법으로 취급하기
		radix := matches[juicer.SubexpIndex("radix")]
		if radix == "[]" {
			packed.Radix = 62
		} else {
			// int 범위를 벗어난 진법은 -1 로 두고 Unpack 에서 지원하지 않는 진법으로 거부하기
			n, err := strconv.Atoi(radix)
			if err != nil {
				n = -1
			}

			packed.Radix = n
		}

		count, err := strconv.Atoi(matches[juicer.SubexpIndex("count")])
		if err != nil {
			return nil, errors.WithMessagef(ErrUnrecognizedStructure, "개수 %q 를 해석할 수 없습니다", matches[juicer.SubexpIndex("count")])
		}

		packed.Count = count

		return packed, nil
	}

	return nil, ErrUnrecognizedStructure
}

// Unpack 메소드는 페이로드 속 토큰을 심볼 테이블 값으로 바꾼 결과를 반환합니다
//
// 토큰이 가리키는 값이 테이블 범위를 벗어나거나 빈 문자열이라면 토큰을 그대로 둡니다.
// 토큰을 진법으로 해석할 수 없다면 구조 자체가 잘못된 것이므로 ErrTokenDecode 를 반환합니다
func (packed *Packed) Unpack() (string, error) {
	if len(packed.Symbols) != packed.Count {
		return "", errors.WithMessagef(ErrSymbolTableMismatch, "선언된 개수는 %d 이지만 테이블 길이는 %d 입니다", packed.Count, len(packed.Symbols))
	}

	// 1 진법은 존재하지 않으므로 토큰을 10 진수 번호로 바로 사용하기
	var unbaser *Unbaser
	if packed.Radix != 1 {
		var err error
		if unbaser, err = NewUnbaser(packed.Radix); err != nil {
			return "", errors.WithMessage(err, "알 수 없는 p.a.c.k.e.r. 인코딩입니다")
		}
	}

	var failure error

	source := patternWord.ReplaceAllStringFunc(packed.Payload, func(word string) string {
		if failure != nil {
			return word
		}

		symbol, err := packed.lookup(unbaser, word)
		if err != nil {
			failure = err
			return word
		}

		return symbol
	})
	if failure != nil {
		return "", failure
	}

	return replaceStrings(source), nil
}

func (packed *Packed) lookup(unbaser *Unbaser, word string) (string, error) {
	var index uint64

	if unbaser == nil {
		// 앞쪽 숫자만 번호로 읽고 숫자로 시작하지 않는 토큰은 그대로 두기
		digits := patternDigits.FindString(word)
		if digits == "" {
			return word, nil
		}

		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return word, nil
		}

		index = n
	} else {
		n, err := unbaser.Unbase(word)
		if err != nil {
			return "", err
		}

		index = n
	}

	if index >= uint64(len(packed.Symbols)) || packed.Symbols[index] == "" {
		return word, nil
	}

	return packed.Symbols[index], nil
}

// 압축기가 문자열 리터럴을 var _name=["..."]; 배열로 빼냈다면 _name[i] 참조를 원래 리터럴로 되돌립니다
// 선언은 위치와 상관없이 처음 나온 것을 찾아 그 자리에서 지우며, 배열 선언이 없다면 그대로 반환합니다
func replaceStrings(source string) string {
	loc := patternStrings.FindStringSubmatchIndex(source)
	if loc == nil {
		return source
	}

	name := source[loc[2]:loc[3]]
	values := strings.Split(source[loc[4]:loc[5]], `","`)

	pairs := make([]string, 0, len(values)*2)
	for index, value := range values {
		pairs = append(pairs, name+"["+strconv.Itoa(index)+"]", `"`+value+`"`)
	}

	source = source[:loc[0]] + source[loc[1]:]

	return strings.NewReplacer(pairs...).Replace(source)
}
