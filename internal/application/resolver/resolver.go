// Package resolver は地名入力から予報区コードまでの解決パイプライン。
// ジオコーダと参照データ供給元は注入し、対話側とデイリー通知側で
// 同じ挙動を共有する。
package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Nyukimin/otenkibot/internal/domain/area"
)

// Resolver は 正規化 → 都道府県 → 管轄 → 予報区 を順に解決する。
type Resolver struct {
	geocoder area.Geocoder
	datasets area.DatasetProvider
	logger   *slog.Logger
}

// New はResolverを作る。
func New(geocoder area.Geocoder, datasets area.DatasetProvider, logger *slog.Logger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		datasets: datasets,
		logger:   logger,
	}
}

// Resolve は入力地名を予報区へ解決する。失敗は area パッケージの
// 種別エラーで返り、呼び出し側で「見つかりません」応答に変換される。
// 同一の (入力, データセット) に対して結果は決定的。
func (r *Resolver) Resolve(ctx context.Context, raw string) (area.Resolution, error) {
	pref, err := r.locatePrefecture(ctx, raw)
	if err != nil {
		return area.Resolution{}, err
	}

	dataset, err := r.datasets.Dataset(ctx)
	if err != nil {
		return area.Resolution{}, fmt.Errorf("%w: %w", area.ErrOfficeNotFound, err)
	}

	office, err := area.OfficeFor(pref, dataset)
	if err != nil {
		return area.Resolution{}, err
	}

	res, err := area.MatchSubArea(office, raw)
	if err != nil {
		return area.Resolution{}, err
	}

	r.logger.Info("area resolved",
		"query", raw,
		"prefecture", pref.Name(),
		"office", res.OfficeCode,
		"area", res.AreaCode,
		"area_name", res.AreaName)
	return res, nil
}

// locatePrefecture はジオコーダの region を対応表で引き、外れた場合は
// 直接参照表に倒す。参照表は正規化した入力、次いでジオコーダが返した
// 地名の順で引き、先にヒットした方を採る。
func (r *Resolver) locatePrefecture(ctx context.Context, raw string) (area.Prefecture, error) {
	result, err := r.geocoder.Geocode(ctx, raw)
	if err != nil {
		r.logger.Warn("geocode failed", "query", raw, "error", err)
		result = nil
	}

	if result != nil && result.Region != "" {
		if pref, ok := area.PrefectureForRegion(result.Region); ok {
			return pref, nil
		}
		r.logger.Debug("region not in prefecture table", "region", result.Region)
	}

	if pref, ok := area.PrefectureForCity(area.Normalize(raw)); ok {
		return pref, nil
	}
	if result != nil {
		if pref, ok := area.PrefectureForCity(area.Normalize(result.PlaceName)); ok {
			return pref, nil
		}
		return 0, area.ErrPrefectureUnmapped
	}
	return 0, area.ErrGeocodeMiss
}
