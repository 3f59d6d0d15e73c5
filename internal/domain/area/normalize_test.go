package area

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"市を剥がす", "大阪市", "大阪"},
		{"区を剥がす", "千代田区", "千代田"},
		{"町を剥がす", "大町町", "大"},
		{"県を剥がす", "神奈川県", "神奈川"},
		{"都を剥がす", "東京都", "東京"},
		{"地方を剥がす", "関東地方", "関東"},
		{"重なった接尾辞は全て剥がす", "京都府", "京"},
		{"半角空白除去", "横浜 市", "横浜"},
		{"全角空白除去", "横浜　市", "横浜"},
		{"接尾辞そのものは残す", "市", "市"},
		{"ラテン文字は小文字化", "Yokohama市", "yokohama"},
		{"空文字", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"大阪市", "横浜市", "京都府", "札幌市", "那覇市", "ＡＢＣ町", "　 "}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize(%q) should be idempotent", in)
	}
}

func TestNormalize_SuffixStrippedEquivalence(t *testing.T) {
	assert.Equal(t, Normalize("大阪"), Normalize("大阪市"))
	assert.Equal(t, Normalize("横浜"), Normalize("横浜市"))
}
