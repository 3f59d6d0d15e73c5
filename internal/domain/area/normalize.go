package area

import (
	"strings"
	"unicode"
)

// 末尾から剥がす行政接尾辞。複数文字のものを先に試す。
var adminSuffixes = []string{
	"地方", "地域",
	"市", "区", "町", "村", "郡",
	"都", "道", "府", "県",
}

// Normalize は空白を除去し、末尾の行政接尾辞を再帰的に剥がして
// 小文字化する。冪等であり、どんな入力でも失敗しない。
func Normalize(raw string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	return strings.ToLower(stripAdminSuffix(s))
}

func stripAdminSuffix(s string) string {
	for _, suffix := range adminSuffixes {
		// 接尾辞そのものが入力の場合は剥がさない（空文字になるため）。
		if s != suffix && strings.HasSuffix(s, suffix) {
			return stripAdminSuffix(strings.TrimSuffix(s, suffix))
		}
	}
	return s
}
