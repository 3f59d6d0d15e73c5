package resolver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nyukimin/otenkibot/internal/domain/area"
)

type stubGeocoder struct {
	result *area.GeocodeResult
	err    error
	calls  int
}

func (g *stubGeocoder) Geocode(_ context.Context, _ string) (*area.GeocodeResult, error) {
	g.calls++
	return g.result, g.err
}

type stubProvider struct {
	dataset *area.Dataset
	err     error
}

func (p *stubProvider) Dataset(_ context.Context) (*area.Dataset, error) {
	return p.dataset, p.err
}

func kanagawaDataset() *area.Dataset {
	return &area.Dataset{Offices: []area.Office{
		{
			Code: "140000",
			Name: "神奈川県",
			SubAreas: []area.SubArea{
				{Code: "1420100", Name: "横須賀市", Kana: "よこすかし"},
				{Code: "1410000", Name: "横浜市", Kana: "よこはまし"},
				{Code: "1413000", Name: "川崎市", Kana: "かわさきし"},
			},
		},
	}}
}

func newTestResolver(g area.Geocoder, p area.DatasetProvider) *Resolver {
	return New(g, p, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestResolve_EndToEnd(t *testing.T) {
	geo := &stubGeocoder{result: &area.GeocodeResult{
		PlaceName: "Yokohama",
		Region:    "Kanagawa",
		Lat:       35.44,
		Lon:       139.64,
	}}
	r := newTestResolver(geo, &stubProvider{dataset: kanagawaDataset()})

	res, err := r.Resolve(context.Background(), "横浜市")
	require.NoError(t, err)
	assert.Equal(t, "140000", res.OfficeCode)
	assert.Equal(t, "1410000", res.AreaCode)
	assert.Equal(t, "横浜市", res.AreaName)
	assert.Equal(t, 1, geo.calls)
}

func TestResolve_CityFallbackWhenRegionMissing(t *testing.T) {
	// ジオコーダが行政区画を返さない場合は直接参照表で救う。
	geo := &stubGeocoder{result: &area.GeocodeResult{PlaceName: "Yokohama", Region: ""}}
	r := newTestResolver(geo, &stubProvider{dataset: kanagawaDataset()})

	res, err := r.Resolve(context.Background(), "横浜市")
	require.NoError(t, err)
	assert.Equal(t, "1410000", res.AreaCode)
}

func TestResolve_UnmappedRegionStillTriesFallback(t *testing.T) {
	geo := &stubGeocoder{result: &area.GeocodeResult{PlaceName: "Yokohama", Region: "Unknown Region"}}
	r := newTestResolver(geo, &stubProvider{dataset: kanagawaDataset()})

	res, err := r.Resolve(context.Background(), "横浜市")
	require.NoError(t, err)
	assert.Equal(t, "1410000", res.AreaCode)
}

func TestResolve_PrefectureUnmapped(t *testing.T) {
	geo := &stubGeocoder{result: &area.GeocodeResult{PlaceName: "Somewhere", Region: "Unknown Region"}}
	r := newTestResolver(geo, &stubProvider{dataset: kanagawaDataset()})

	_, err := r.Resolve(context.Background(), "未知の地名")
	assert.ErrorIs(t, err, area.ErrPrefectureUnmapped)
}

func TestResolve_GeocodeMiss(t *testing.T) {
	r := newTestResolver(&stubGeocoder{result: nil}, &stubProvider{dataset: kanagawaDataset()})

	_, err := r.Resolve(context.Background(), "未知の地名")
	assert.ErrorIs(t, err, area.ErrGeocodeMiss)
}

func TestResolve_GeocoderErrorFallsBackToCityTable(t *testing.T) {
	// 外部照会の失敗は致命ではなく、直接参照表で解決できれば成功する。
	geo := &stubGeocoder{err: errors.New("upstream down")}
	r := newTestResolver(geo, &stubProvider{dataset: kanagawaDataset()})

	res, err := r.Resolve(context.Background(), "横浜市")
	require.NoError(t, err)
	assert.Equal(t, "1410000", res.AreaCode)

	_, err = r.Resolve(context.Background(), "未知の地名")
	assert.ErrorIs(t, err, area.ErrGeocodeMiss)
}

func TestResolve_DatasetError(t *testing.T) {
	geo := &stubGeocoder{result: &area.GeocodeResult{Region: "Kanagawa"}}
	r := newTestResolver(geo, &stubProvider{err: errors.New("fetch failed")})

	_, err := r.Resolve(context.Background(), "横浜市")
	assert.ErrorIs(t, err, area.ErrOfficeNotFound)
}

func TestResolve_Deterministic(t *testing.T) {
	geo := &stubGeocoder{result: &area.GeocodeResult{Region: "Kanagawa"}}
	r := newTestResolver(geo, &stubProvider{dataset: kanagawaDataset()})

	first, err := r.Resolve(context.Background(), "よこすか")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Resolve(context.Background(), "よこすか")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
