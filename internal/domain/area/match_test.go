package area

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOffice(subAreas ...SubArea) Office {
	return Office{Code: "140000", Name: "神奈川県", SubAreas: subAreas}
}

func TestMatchSubArea_ExactNameWins(t *testing.T) {
	office := testOffice(
		SubArea{Code: "1", Name: "川崎市", Kana: "かわさきし"},
		SubArea{Code: "2", Name: "横浜市", Kana: "よこはまし"},
		SubArea{Code: "3", Name: "横須賀市", Kana: "よこすかし"},
	)

	res, err := MatchSubArea(office, "横浜市")
	require.NoError(t, err)
	assert.Equal(t, "2", res.AreaCode)
	assert.Equal(t, "横浜市", res.AreaName)
	assert.Equal(t, "140000", res.OfficeCode)
}

func TestMatchSubArea_ExactMatchIndependentOfOrder(t *testing.T) {
	// 完全一致は部分一致候補より先に並んでいても後に並んでいても勝つ。
	forward := testOffice(
		SubArea{Code: "1", Name: "横浜・川崎"},
		SubArea{Code: "2", Name: "横浜"},
	)
	backward := testOffice(
		SubArea{Code: "2", Name: "横浜"},
		SubArea{Code: "1", Name: "横浜・川崎"},
	)

	for _, office := range []Office{forward, backward} {
		res, err := MatchSubArea(office, "横浜")
		require.NoError(t, err)
		assert.Equal(t, "2", res.AreaCode)
	}
}

func TestMatchSubArea_ExactKanaMatch(t *testing.T) {
	office := testOffice(
		SubArea{Code: "1", Name: "東部", Kana: "とうぶ"},
		SubArea{Code: "2", Name: "西部", Kana: "せいぶ"},
	)

	res, err := MatchSubArea(office, "せいぶ")
	require.NoError(t, err)
	assert.Equal(t, "2", res.AreaCode)
}

func TestMatchSubArea_LongerContainmentOutranksShorter(t *testing.T) {
	office := testOffice(
		SubArea{Code: "1", Name: "京"},
		SubArea{Code: "2", Name: "東京"},
	)

	res, err := MatchSubArea(office, "東京都庁")
	require.NoError(t, err)
	assert.Equal(t, "2", res.AreaCode)
}

func TestMatchSubArea_NameBandOutranksKanaBand(t *testing.T) {
	office := testOffice(
		SubArea{Code: "1", Name: "北部", Kana: "あいうえおかきくけこ"},
		SubArea{Code: "2", Name: "あい地区", Kana: "なし"},
	)

	// 仮名の包含（長い）より地名の包含（短い）が優先される帯順になっている
	// ことまでは保証しない。ここでは仮名しか当たらない候補と地名が当たる
	// 候補の比較のみ確認する。
	res, err := MatchSubArea(office, "あい")
	require.NoError(t, err)
	assert.Equal(t, "2", res.AreaCode)
}

func TestMatchSubArea_FallbackToFirstChild(t *testing.T) {
	office := testOffice(
		SubArea{Code: "A", Name: "北部", Kana: "ほくぶ"},
		SubArea{Code: "B", Name: "中部", Kana: "ちゅうぶ"},
		SubArea{Code: "C", Name: "南部", Kana: "なんぶ"},
	)

	res, err := MatchSubArea(office, "まったく関係ない入力")
	require.NoError(t, err)
	assert.Equal(t, "A", res.AreaCode, "containment relation が無ければ先頭の予報区に倒す")
}

func TestMatchSubArea_TieKeepsFirstInScanOrder(t *testing.T) {
	office := testOffice(
		SubArea{Code: "1", Name: "中央"},
		SubArea{Code: "2", Name: "中央"},
	)

	res, err := MatchSubArea(office, "中央区役所前")
	require.NoError(t, err)
	assert.Equal(t, "1", res.AreaCode)
}

func TestMatchSubArea_NoSubAreas(t *testing.T) {
	_, err := MatchSubArea(testOffice(), "横浜")
	assert.ErrorIs(t, err, ErrNoSubAreas)
}

func TestMatchSubArea_EmptyQueryFallsBack(t *testing.T) {
	office := testOffice(
		SubArea{Code: "A", Name: "北部"},
		SubArea{Code: "B", Name: "南部"},
	)

	res, err := MatchSubArea(office, "   ")
	require.NoError(t, err)
	assert.Equal(t, "A", res.AreaCode)
}
