package jma

import (
	"context"
	"sync"

	"github.com/Nyukimin/otenkibot/internal/domain/area"
)

// CachedProvider は参照データをプロセス生存中メモ化する
// area.DatasetProvider のデコレータ。成功時のみキャッシュし、
// 失敗は次回呼び出しで再取得する。
type CachedProvider struct {
	inner area.DatasetProvider

	mu     sync.Mutex
	cached *area.Dataset
}

// NewCachedProvider はキャッシュ付きの供給元を作る。
func NewCachedProvider(inner area.DatasetProvider) *CachedProvider {
	return &CachedProvider{inner: inner}
}

// Dataset はキャッシュ済みならそれを、なければ取得して返す。
// 取得中はロックを握るため、初回アクセスが競合しても取得は一度で済む。
func (p *CachedProvider) Dataset(ctx context.Context) (*area.Dataset, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil {
		return p.cached, nil
	}

	d, err := p.inner.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	p.cached = d
	return d, nil
}
