// Package user は利用者ごとの会話状態と登録地を扱う。
package user

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound は未登録の利用者。
var ErrNotFound = errors.New("user: not found")

// State は会話状態。自由文字列ではなく列挙で持つ。
type State int

const (
	// StateNormal は通常の待ち受け。
	StateNormal State = iota
	// StateAwaitingLocation は地点登録の入力待ち。
	StateAwaitingLocation
)

// String は永続化に使う安定した表現を返す。
func (s State) String() string {
	switch s {
	case StateAwaitingLocation:
		return "awaiting_location"
	default:
		return "normal"
	}
}

// ParseState は永続化された表現から状態を復元する。
func ParseState(raw string) (State, error) {
	switch raw {
	case "normal", "":
		return StateNormal, nil
	case "awaiting_location":
		return StateAwaitingLocation, nil
	default:
		return StateNormal, fmt.Errorf("user: unknown state %q", raw)
	}
}

// Location は解決済みの登録地。
type Location struct {
	PlaceName  string
	OfficeCode string
	AreaCode   string
	AreaName   string
}

// Record は利用者1人分の永続化レコード。
type Record struct {
	UserID    string
	State     State
	Location  *Location
	UpdatedAt time.Time
}

// Store は利用者レコードの永続化。
type Store interface {
	// State は会話状態を返す。未登録は StateNormal。
	State(ctx context.Context, userID string) (State, error)
	// SetState は状態のみ更新する。登録地は保持される。
	SetState(ctx context.Context, userID string, state State) error
	// Location は登録地を返す。未登録は ErrNotFound。
	Location(ctx context.Context, userID string) (*Location, error)
	// SetLocation は登録地を保存し、状態を StateNormal に戻す。
	SetLocation(ctx context.Context, userID string, loc Location) error
	// ListRegistered は登録地を持つ全利用者を返す（デイリー通知用）。
	ListRegistered(ctx context.Context) ([]Record, error)
}
