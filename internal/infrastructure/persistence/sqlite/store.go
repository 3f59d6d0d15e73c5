// Package sqlite は user.Store のsqlite実装。
// 純Goドライバ modernc.org/sqlite を使うためCGOは不要。
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Nyukimin/otenkibot/internal/domain/user"
)

const schema = `CREATE TABLE IF NOT EXISTS users (
	user_id     TEXT PRIMARY KEY,
	state       TEXT NOT NULL DEFAULT 'normal',
	place_name  TEXT,
	office_code TEXT,
	area_code   TEXT,
	area_name   TEXT,
	updated_at  TEXT NOT NULL
);`

// Store は user.Store のsqlite実装。
type Store struct {
	db *sql.DB
}

// New はデータベースを開き（なければ作成し）スキーマを適用する。
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// 小さな書き込みが多いのでWALにしておく。
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// State は会話状態を返す。未登録の利用者は StateNormal。
func (s *Store) State(ctx context.Context, userID string) (user.State, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM users WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return user.StateNormal, nil
	}
	if err != nil {
		return user.StateNormal, fmt.Errorf("query state: %w", err)
	}

	state, err := user.ParseState(raw)
	if err != nil {
		// 旧データの不正値は通常状態として扱う。
		return user.StateNormal, nil
	}
	return state, nil
}

// SetState は状態のみ更新する。登録地は温存される。
func (s *Store) SetState(ctx context.Context, userID string, state user.State) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, state, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			state = excluded.state,
			updated_at = excluded.updated_at`,
		userID, state.String(), now())
	if err != nil {
		return fmt.Errorf("set state: %w", err)
	}
	return nil
}

// Location は登録地を返す。未登録は user.ErrNotFound。
func (s *Store) Location(ctx context.Context, userID string) (*user.Location, error) {
	var loc user.Location
	var place, office, areaCode, areaName sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT place_name, office_code, area_code, area_name
		FROM users WHERE user_id = ?`, userID).
		Scan(&place, &office, &areaCode, &areaName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query location: %w", err)
	}
	if !place.Valid || place.String == "" {
		return nil, user.ErrNotFound
	}

	loc = user.Location{
		PlaceName:  place.String,
		OfficeCode: office.String,
		AreaCode:   areaCode.String,
		AreaName:   areaName.String,
	}
	return &loc, nil
}

// SetLocation は登録地を保存し、状態を通常に戻す。
func (s *Store) SetLocation(ctx context.Context, userID string, loc user.Location) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, state, place_name, office_code, area_code, area_name, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			state = excluded.state,
			place_name = excluded.place_name,
			office_code = excluded.office_code,
			area_code = excluded.area_code,
			area_name = excluded.area_name,
			updated_at = excluded.updated_at`,
		userID, user.StateNormal.String(),
		loc.PlaceName, loc.OfficeCode, loc.AreaCode, loc.AreaName, now())
	if err != nil {
		return fmt.Errorf("set location: %w", err)
	}
	return nil
}

// ListRegistered は登録地を持つ全利用者を返す。
func (s *Store) ListRegistered(ctx context.Context) ([]user.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, state, place_name, office_code, area_code, area_name, updated_at
		FROM users
		WHERE place_name IS NOT NULL AND place_name != ''
		ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list registered: %w", err)
	}
	defer rows.Close()

	var records []user.Record
	for rows.Next() {
		var r user.Record
		var rawState, updatedAt string
		var loc user.Location
		if err := rows.Scan(&r.UserID, &rawState, &loc.PlaceName,
			&loc.OfficeCode, &loc.AreaCode, &loc.AreaName, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		r.State, _ = user.ParseState(rawState)
		r.Location = &loc
		if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			r.UpdatedAt = t
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Ping はデータベースへの到達性を確認する。死活監視用。
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close はデータベースを閉じる。
func (s *Store) Close() error {
	return s.db.Close()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
