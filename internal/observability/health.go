package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// CheckFunc は1つの依存先の死活確認。okと診断メッセージを返す。
type CheckFunc func(ctx context.Context) (bool, string)

// HealthChecker は名前付きのCheckFuncを束ねてHTTPで公開する。
// チェックの登録は公開前に済ませること。
type HealthChecker struct {
	names  []string
	checks map[string]CheckFunc
}

// NewHealthChecker は空のHealthCheckerを作る。チェックが無ければ常にok。
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{checks: map[string]CheckFunc{}}
}

// Add はチェックを登録する。応答には登録順で並ぶ。
func (h *HealthChecker) Add(name string, fn CheckFunc) {
	if _, ok := h.checks[name]; !ok {
		h.names = append(h.names, name)
	}
	h.checks[name] = fn
}

type checkResult struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

// Handler は全チェックを実行し、ひとつでも失敗なら503を返す。
func (h *HealthChecker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		results := make(map[string]checkResult, len(h.names))

		for _, name := range h.names {
			ok, detail := h.checks[name](r.Context())
			results[name] = checkResult{OK: ok, Detail: detail}
			if !ok {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]any{
			"status": status,
			"checks": results,
		})
	})
}

// PingCheck はエラーを返す死活確認をCheckFuncに変換する。
func PingCheck(ping func(ctx context.Context) error) CheckFunc {
	return func(ctx context.Context) (bool, string) {
		if err := ping(ctx); err != nil {
			return false, fmt.Sprintf("unreachable: %v", err)
		}
		return true, "ok"
	}
}
