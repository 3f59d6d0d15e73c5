// Package jma は気象庁防災情報の参照データと予報の取得を担う。
package jma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/Nyukimin/otenkibot/internal/domain/area"
	"github.com/Nyukimin/otenkibot/internal/domain/forecast"
)

const defaultBaseURL = "https://www.jma.go.jp/bosai"

// Client は area.json と予報ドキュメントを取得する。
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient は気象庁APIクライアントを作る。
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		logger:     logger,
	}
}

// SetBaseURL はテスト用にエンドポイントを差し替える。
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// area.json の生構造。offices の children は class10、
// class10→class15→class20 と辿ると予報区に行き着く。
type rawAreaFile struct {
	Offices  map[string]rawOffice  `json:"offices"`
	Class10s map[string]rawBranch  `json:"class10s"`
	Class15s map[string]rawBranch  `json:"class15s"`
	Class20s map[string]rawClass20 `json:"class20s"`
}

type rawOffice struct {
	Name     string   `json:"name"`
	Children []string `json:"children"`
}

type rawBranch struct {
	Name     string   `json:"name"`
	Children []string `json:"children"`
}

type rawClass20 struct {
	Name string `json:"name"`
	Kana string `json:"kana"`
}

// Dataset は参照データを取得し、管轄→予報区（class20）の木に平坦化する。
// 予報区の並びは children 配列の順をそのまま保つ。
func (c *Client) Dataset(ctx context.Context) (*area.Dataset, error) {
	var raw rawAreaFile
	if err := c.getJSON(ctx, "/common/const/area.json", &raw); err != nil {
		return nil, fmt.Errorf("fetch area dataset: %w", err)
	}

	codes := make([]string, 0, len(raw.Offices))
	for code := range raw.Offices {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	offices := make([]area.Office, 0, len(codes))
	for _, code := range codes {
		o := raw.Offices[code]
		office := area.Office{
			Code: code,
			Name: o.Name,
		}
		for _, c10 := range o.Children {
			for _, c15 := range raw.Class10s[c10].Children {
				for _, c20 := range raw.Class15s[c15].Children {
					leaf, ok := raw.Class20s[c20]
					if !ok {
						continue
					}
					office.SubAreas = append(office.SubAreas, area.SubArea{
						Code: c20,
						Name: leaf.Name,
						Kana: leaf.Kana,
					})
				}
			}
		}
		offices = append(offices, office)
	}

	c.logger.Info("area dataset loaded", "offices", len(offices))
	return &area.Dataset{Offices: offices}, nil
}

// 予報ドキュメントの生構造。timeSeries[0]=天気、[1]=降水確率、[2]=気温。
type rawForecast struct {
	ReportDatetime string `json:"reportDatetime"`
	TimeSeries     []struct {
		TimeDefines []string `json:"timeDefines"`
		Areas       []struct {
			Area struct {
				Name string `json:"name"`
				Code string `json:"code"`
			} `json:"area"`
			Weathers []string `json:"weathers"`
			Pops     []string `json:"pops"`
			Temps    []string `json:"temps"`
		} `json:"areas"`
	} `json:"timeSeries"`
}

// Fetch は管轄コードの予報を取得する。
func (c *Client) Fetch(ctx context.Context, officeCode string) (*forecast.Document, error) {
	var docs []rawForecast
	if err := c.getJSON(ctx, "/forecast/data/forecast/"+officeCode+".json", &docs); err != nil {
		return nil, fmt.Errorf("%w: %w", forecast.ErrFetchFailed, err)
	}
	if len(docs) == 0 || len(docs[0].TimeSeries) < 1 {
		return nil, forecast.ErrParse
	}

	// docs[0] が短期予報、docs[1] は週間予報。
	short := docs[0]
	doc := &forecast.Document{Reported: short.ReportDatetime}

	pick := func(idx int, values func(a int) []string) []forecast.AreaSeries {
		if idx >= len(short.TimeSeries) {
			return nil
		}
		ts := short.TimeSeries[idx]
		series := make([]forecast.AreaSeries, 0, len(ts.Areas))
		for i, a := range ts.Areas {
			series = append(series, forecast.AreaSeries{
				Code:   a.Area.Code,
				Name:   a.Area.Name,
				Values: values(i),
			})
		}
		return series
	}

	doc.Weather = pick(0, func(i int) []string { return short.TimeSeries[0].Areas[i].Weathers })
	doc.Pops = pick(1, func(i int) []string { return short.TimeSeries[1].Areas[i].Pops })
	doc.Temps = pick(2, func(i int) []string { return short.TimeSeries[2].Areas[i].Temps })

	return doc, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("JMA API status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
