package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
)

// Repository app.user_settings 기반 저장소
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository 새 저장소 생성
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get 설정 조회 (행이 없으면 기본값)
func (r *Repository) Get(ctx context.Context, owner string) (contracts.UserSettings, error) {
	return r.get(ctx, r.pool, owner)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *Repository) get(ctx context.Context, q querier, owner string) (contracts.UserSettings, error) {
	query := `
		SELECT owner, favorites, color_scheme, updated_at
		FROM app.user_settings
		WHERE owner = $1`

	var s contracts.UserSettings
	var scheme string
	err := q.QueryRow(ctx, query, owner).Scan(&s.Owner, &s.Favorites, &scheme, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return contracts.DefaultUserSettings(owner), nil
	}
	if err != nil {
		return contracts.UserSettings{}, fmt.Errorf("query user settings: %w", err)
	}

	s.ColorScheme = contracts.ColorScheme(scheme)
	if s.Favorites == nil {
		s.Favorites = []string{}
	}
	return s, nil
}

// SetFavorite 즐겨찾기 추가/제거 (행 잠금 후 갱신)
func (r *Repository) SetFavorite(ctx context.Context, owner, product string, favorite bool) (contracts.UserSettings, error) {
	p, err := normalizeProduct(product)
	if err != nil {
		return contracts.UserSettings{}, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return contracts.UserSettings{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO app.user_settings (owner) VALUES ($1) ON CONFLICT (owner) DO NOTHING`, owner); err != nil {
		return contracts.UserSettings{}, fmt.Errorf("ensure user settings: %w", err)
	}

	var favorites []string
	if err := tx.QueryRow(ctx,
		`SELECT favorites FROM app.user_settings WHERE owner = $1 FOR UPDATE`, owner).Scan(&favorites); err != nil {
		return contracts.UserSettings{}, fmt.Errorf("lock user settings: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE app.user_settings SET favorites = $2, updated_at = now() WHERE owner = $1`,
		owner, toggle(favorites, p, favorite)); err != nil {
		return contracts.UserSettings{}, fmt.Errorf("update favorites: %w", err)
	}

	updated, err := r.get(ctx, tx, owner)
	if err != nil {
		return contracts.UserSettings{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return contracts.UserSettings{}, fmt.Errorf("commit: %w", err)
	}
	return updated, nil
}

// SetColorScheme 색상 선호 변경
func (r *Repository) SetColorScheme(ctx context.Context, owner string, scheme contracts.ColorScheme) (contracts.UserSettings, error) {
	if err := validateScheme(scheme); err != nil {
		return contracts.UserSettings{}, err
	}

	query := `
		INSERT INTO app.user_settings (owner, color_scheme, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (owner) DO UPDATE SET
			color_scheme = EXCLUDED.color_scheme,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.pool.Exec(ctx, query, owner, string(scheme)); err != nil {
		return contracts.UserSettings{}, fmt.Errorf("upsert color scheme: %w", err)
	}

	return r.Get(ctx, owner)
}
