package area

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefectureForRegion(t *testing.T) {
	p, ok := PrefectureForRegion("Kanagawa")
	assert.True(t, ok)
	assert.Equal(t, Kanagawa, p)
	assert.Equal(t, "神奈川県", p.Name())

	_, ok = PrefectureForRegion("Narnia")
	assert.False(t, ok)
}

func TestPrefectureForRegion_CoversAll47(t *testing.T) {
	seen := make(map[Prefecture]bool)
	for _, p := range regionToPrefecture {
		seen[p] = true
	}
	assert.Len(t, seen, 47)
	for p := Hokkaido; p <= Okinawa; p++ {
		assert.True(t, seen[p], "prefecture %s missing from region table", p.Name())
		assert.NotEmpty(t, p.Name())
	}
}

func TestPrefectureForCity(t *testing.T) {
	p, ok := PrefectureForCity(Normalize("横浜市"))
	assert.True(t, ok)
	assert.Equal(t, Kanagawa, p)

	// 接尾辞剥離後のキーで引けること。
	p, ok = PrefectureForCity(Normalize("京都府"))
	assert.True(t, ok)
	assert.Equal(t, Kyoto, p)

	_, ok = PrefectureForCity("存在しない市")
	assert.False(t, ok)
}

func TestOfficeAlias(t *testing.T) {
	assert.Equal(t, "神奈川県", OfficeAlias(Kanagawa))
	assert.Equal(t, "石狩・空知・後志地方", OfficeAlias(Hokkaido))
	assert.Equal(t, "沖縄本島地方", OfficeAlias(Okinawa))
}

func TestOfficeFor(t *testing.T) {
	d := &Dataset{Offices: []Office{
		{Code: "130000", Name: "東京都"},
		{Code: "140000", Name: "神奈川県"},
	}}

	o, err := OfficeFor(Kanagawa, d)
	assert.NoError(t, err)
	assert.Equal(t, "140000", o.Code)

	_, err = OfficeFor(Okinawa, d)
	assert.ErrorIs(t, err, ErrOfficeNotFound)

	_, err = OfficeFor(Prefecture(0), d)
	assert.ErrorIs(t, err, ErrOfficeNotFound)
}
