package area

import (
	"strings"
	"unicode/utf8"
)

// スコア帯。地名ベースの帯を仮名ベースの帯より常に上に置き、
// 帯内では一致した候補側文字列が長いほど高くする。
const (
	scoreExact            = 100
	scoreQueryContainsName = 50
	scoreNameContainsQuery = 40
	scoreQueryContainsKana = 30
	scoreKanaContainsQuery = 20
)

// MatchSubArea は管轄配下の予報区から入力に最も合う区を選ぶ。
// 完全一致（地名または仮名）は即確定。部分一致はスコア最大の候補、
// 同点はデータセット順で先の候補。どの候補とも包含関係がなければ
// 先頭の予報区に倒す。子を持たない管轄のみ失敗する。
func MatchSubArea(office Office, raw string) (Resolution, error) {
	if len(office.SubAreas) == 0 {
		return Resolution{}, ErrNoSubAreas
	}

	query := Normalize(raw)
	best := office.SubAreas[0]
	bestScore := 0

	for _, sa := range office.SubAreas {
		name := Normalize(sa.Name)
		kana := Normalize(sa.Kana)

		if query != "" && (query == name || query == kana) {
			return resolution(office, sa), nil
		}

		score := 0
		if name != "" && query != "" {
			if strings.Contains(query, name) {
				score = max(score, scoreQueryContainsName+utf8.RuneCountInString(name))
			}
			if strings.Contains(name, query) {
				score = max(score, scoreNameContainsQuery+utf8.RuneCountInString(name))
			}
		}
		if kana != "" && query != "" {
			if strings.Contains(query, kana) {
				score = max(score, scoreQueryContainsKana+utf8.RuneCountInString(kana))
			}
			if strings.Contains(kana, query) {
				score = max(score, scoreKanaContainsQuery+utf8.RuneCountInString(kana))
			}
		}

		if score > bestScore {
			bestScore = score
			best = sa
		}
	}

	return resolution(office, best), nil
}

func resolution(office Office, sa SubArea) Resolution {
	return Resolution{
		OfficeCode: office.Code,
		AreaCode:   sa.Code,
		AreaName:   sa.Name,
	}
}
