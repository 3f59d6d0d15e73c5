// Package forecast は気象庁の予報ドキュメントから当日分の要約を取り出す。
package forecast

import (
	"context"
	"errors"
	"regexp"
	"strconv"
)

var (
	ErrFetchFailed = errors.New("forecast: fetch failed")
	ErrParse       = errors.New("forecast: unexpected document shape")
)

// Placeholder は値が取れなかった項目の表示。
const Placeholder = "--"

// AreaSeries はひとつの予報区に対する時系列の値。
type AreaSeries struct {
	Code   string
	Name   string
	Values []string
}

// Document は管轄単位の予報。Weather/Pops/Temps はそれぞれ
// timeSeries の天気・降水確率・気温に対応する。
type Document struct {
	Reported string
	Weather  []AreaSeries
	Pops     []AreaSeries
	Temps    []AreaSeries
}

// Provider は管轄コードから予報ドキュメントを取得する外部照会。
type Provider interface {
	Fetch(ctx context.Context, officeCode string) (*Document, error)
}

// Summary は通知カード1枚分の内容。
type Summary struct {
	AreaName string
	Weather  string
	High     string
	Low      string
	Pop      string
}

var spaceRuns = regexp.MustCompile(`[\s　]+`)

// Summarize は指定予報区の当日要約を組み立てる。予報区コードが
// ドキュメントに見つからない場合は先頭の予報区に倒す。
func Summarize(doc *Document, areaCode string) (Summary, error) {
	if doc == nil || len(doc.Weather) == 0 {
		return Summary{}, ErrParse
	}

	weather := seriesFor(doc.Weather, areaCode)
	if len(weather.Values) == 0 {
		return Summary{}, ErrParse
	}

	s := Summary{
		AreaName: weather.Name,
		Weather:  spaceRuns.ReplaceAllString(weather.Values[0], " "),
		High:     Placeholder,
		Low:      Placeholder,
		Pop:      Placeholder,
	}

	if pop, ok := maxPop(seriesFor(doc.Pops, areaCode).Values); ok {
		s.Pop = pop
	}

	low, high := tempPair(seriesFor(doc.Temps, areaCode).Values)
	if low != "" {
		s.Low = low
	}
	if high != "" {
		s.High = high
	}

	return s, nil
}

// seriesFor はコード一致の系列を返し、なければ先頭を返す。
func seriesFor(series []AreaSeries, areaCode string) AreaSeries {
	if len(series) == 0 {
		return AreaSeries{}
	}
	for _, s := range series {
		if s.Code == areaCode {
			return s
		}
	}
	return series[0]
}

// maxPop は欠測値を除いた先頭2件の降水確率の最大値を返す。
// 1件しか残らなければその値、数値が無ければ ok=false。
func maxPop(values []string) (string, bool) {
	nums := make([]int, 0, 2)
	for _, v := range values {
		if len(nums) == 2 {
			break
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			// "--" や空文字の欠測はスライス前に読み飛ばす。
			continue
		}
		nums = append(nums, n)
	}
	if len(nums) == 0 {
		return "", false
	}
	best := nums[0]
	for _, n := range nums[1:] {
		if n > best {
			best = n
		}
	}
	return strconv.Itoa(best), true
}

// tempPair は気温系列から最初の数値ペアを (最低, 最高) として返す。
func tempPair(values []string) (low, high string) {
	nums := make([]string, 0, 2)
	for _, v := range values {
		if len(nums) == 2 {
			break
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			continue
		}
		nums = append(nums, v)
	}
	switch len(nums) {
	case 2:
		return nums[0], nums[1]
	case 1:
		return "", nums[0]
	default:
		return "", ""
	}
}
