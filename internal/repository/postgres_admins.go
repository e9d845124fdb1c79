package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hoon0510/loneatkr/internal/domain"
)

// PostgresAdminsRepository admins 테이블 Repository
type PostgresAdminsRepository struct {
	db *sql.DB
}

func NewPostgresAdminsRepository(db *sql.DB) *PostgresAdminsRepository {
	return &PostgresAdminsRepository{db: db}
}

var _ AdminsRepo = (*PostgresAdminsRepository)(nil)

// GetByUsername password_hash 포함 조회 (로그인 검증 전용)
func (p *PostgresAdminsRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	var admin domain.Admin
	err := p.db.QueryRowContext(ctx, `
		SELECT admin_id::text, username, password_hash, created_at, updated_at
		FROM admins
		WHERE username = $1`,
		username,
	).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("admin not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

// Upsert 부트스트랩용: 없으면 생성, 있으면 비밀번호 해시 갱신
func (p *PostgresAdminsRepository) Upsert(ctx context.Context, username, passwordHash string) (*domain.Admin, error) {
	if !domain.IsValidUsername(username) {
		return nil, fmt.Errorf("사용자명은 영문 소문자, 숫자, 언더스코어만 사용할 수 있습니다 (3~50자)")
	}

	var admin domain.Admin
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username)
		DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = now()
		RETURNING admin_id::text, username, password_hash, created_at, updated_at`,
		username, passwordHash,
	).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert admin: %w", err)
	}
	return &admin, nil
}
