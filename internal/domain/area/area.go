// Package area は自由入力の地名を気象庁の予報区コードへ解決する。
package area

import (
	"context"
	"errors"
)

// 解決パイプラインの失敗種別。いずれも当該リクエストのみ終端し、
// プロセスには波及しない。
var (
	ErrGeocodeMiss        = errors.New("area: geocoder returned no usable result")
	ErrPrefectureUnmapped = errors.New("area: region name not mapped to a prefecture")
	ErrOfficeNotFound     = errors.New("area: no forecast office for prefecture")
	ErrNoSubAreas         = errors.New("area: office has no sub-areas")
)

// SubArea は予報区（class20相当）。Kana は読み仮名による副キー。
type SubArea struct {
	Code string
	Name string
	Kana string
}

// Office は気象台の管轄単位。SubAreas はデータセット順を保持する。
type Office struct {
	Code     string
	Name     string
	SubAreas []SubArea
}

// Dataset は offices/class20s の参照データ。取得後は読み取り専用。
type Dataset struct {
	Offices []Office
}

// OfficeByName は表示名の完全一致で管轄を引く。
func (d *Dataset) OfficeByName(name string) (Office, bool) {
	for _, o := range d.Offices {
		if o.Name == name {
			return o, true
		}
	}
	return Office{}, false
}

// OfficeByCode はコードで管轄を引く。
func (d *Dataset) OfficeByCode(code string) (Office, bool) {
	for _, o := range d.Offices {
		if o.Code == code {
			return o, true
		}
	}
	return Office{}, false
}

// Resolution は解決結果。
type Resolution struct {
	OfficeCode string
	AreaCode   string
	AreaName   string
}

// GeocodeResult は外部ジオコーダの応答（1件）。
type GeocodeResult struct {
	PlaceName string
	Region    string
	Lat       float64
	Lon       float64
}

// Geocoder は地名→行政区域の外部照会。ヒットなしは (nil, nil)。
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*GeocodeResult, error)
}

// DatasetProvider は参照データの供給元。キャッシュの有無は実装側の責務。
type DatasetProvider interface {
	Dataset(ctx context.Context) (*Dataset, error)
}
