package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/hoon0510/loneatkr/internal/domain"
	"github.com/hoon0510/loneatkr/internal/models"
)

// 목록 조회 페이지 크기 상한/기본값
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

const restaurantColumns = `
	restaurant_id::text,
	name,
	address,
	region_sido,
	region_sigungu,
	description,
	phone,
	business_hours,
	images,
	latitude,
	longitude,
	is_editor_certified,
	editor_comment,
	oj_count,
	noj_count,
	is_group_spot,
	created_at,
	updated_at`

// PostgresRestaurantsRepository restaurants 테이블 Repository
type PostgresRestaurantsRepository struct {
	db *sql.DB
}

func NewPostgresRestaurantsRepository(db *sql.DB) *PostgresRestaurantsRepository {
	return &PostgresRestaurantsRepository{db: db}
}

var _ RestaurantsRepo = (*PostgresRestaurantsRepository)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(s scanner) (*domain.Restaurant, error) {
	var r domain.Restaurant
	var latitude, longitude sql.NullFloat64
	err := s.Scan(
		&r.ID,
		&r.Name,
		&r.Address,
		&r.Region.Sido,
		&r.Region.Sigungu,
		&r.Description,
		&r.Phone,
		&r.BusinessHours,
		pq.Array(&r.Images),
		&latitude,
		&longitude,
		&r.IsEditorCertified,
		&r.EditorComment,
		&r.OjCount,
		&r.NojCount,
		&r.IsGroupSpot,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if latitude.Valid {
		r.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		r.Longitude = &longitude.Float64
	}
	if r.Images == nil {
		r.Images = []string{}
	}
	return &r, nil
}

func (p *PostgresRestaurantsRepository) queryRestaurants(ctx context.Context, query string, args ...any) ([]domain.Restaurant, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, *r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate restaurants: %w", err)
	}
	return restaurants, nil
}

// List 필터/정렬/페이지네이션 목록 조회
// 정렬: 에디터 인증 우선, 그 다음 최신순 (restaurant_id로 안정화)
func (p *PostgresRestaurantsRepository) List(ctx context.Context, filters RestaurantFilters, page, limit int) ([]domain.Restaurant, int, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	offset := (page - 1) * limit

	where := []string{}
	args := []any{}
	argIdx := 1

	if filters.Sido != "" {
		where = append(where, fmt.Sprintf("region_sido = $%d", argIdx))
		args = append(args, filters.Sido)
		argIdx++
	}
	if filters.Sigungu != "" {
		where = append(where, fmt.Sprintf("region_sigungu = $%d", argIdx))
		args = append(args, filters.Sigungu)
		argIdx++
	}
	if filters.EditorCertified {
		where = append(where, "is_editor_certified = TRUE")
	}
	if filters.Search != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR address ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+filters.Search+"%")
		argIdx++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM restaurants %s`, whereClause)
	if err := p.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count restaurants: %w", err)
	}

	// 동일 필터 기준 에디터 인증 수 (별도 카운트 쿼리)
	var certified int
	certifiedWhere := whereClause
	if certifiedWhere == "" {
		certifiedWhere = "WHERE is_editor_certified = TRUE"
	} else if !filters.EditorCertified {
		certifiedWhere += " AND is_editor_certified = TRUE"
	}
	certifiedQuery := fmt.Sprintf(`SELECT COUNT(*) FROM restaurants %s`, certifiedWhere)
	if err := p.db.QueryRowContext(ctx, certifiedQuery, args...).Scan(&certified); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count certified restaurants: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM restaurants
		%s
		ORDER BY is_editor_certified DESC, created_at DESC, restaurant_id
		LIMIT $%d OFFSET $%d`,
		restaurantColumns, whereClause, argIdx, argIdx+1)
	args = append(args, limit, offset)

	restaurants, err := p.queryRestaurants(ctx, query, args...)
	if err != nil {
		return nil, 0, 0, err
	}
	return restaurants, total, certified, nil
}

// ListAll 관리자 목록 (최신순)
func (p *PostgresRestaurantsRepository) ListAll(ctx context.Context) ([]domain.Restaurant, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM restaurants
		ORDER BY created_at DESC, restaurant_id`, restaurantColumns)
	return p.queryRestaurants(ctx, query)
}

// ListGroupSpots 같이 가는 가게 목록 (최신순)
func (p *PostgresRestaurantsRepository) ListGroupSpots(ctx context.Context) ([]domain.Restaurant, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM restaurants
		WHERE is_group_spot = TRUE
		ORDER BY created_at DESC, restaurant_id`, restaurantColumns)
	return p.queryRestaurants(ctx, query)
}

func (p *PostgresRestaurantsRepository) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM restaurants
		WHERE restaurant_id = $1::uuid`, restaurantColumns)

	r, err := scanRestaurant(p.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("restaurant not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return r, nil
}

// Create 맛집 생성. 투표 카운터는 0으로 초기화된다.
func (p *PostgresRestaurantsRepository) Create(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error) {
	query := fmt.Sprintf(`
		INSERT INTO restaurants (
			name, address, region_sido, region_sigungu, description, phone,
			business_hours, images, latitude, longitude,
			is_editor_certified, editor_comment, is_group_spot
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s`, restaurantColumns)

	created, err := scanRestaurant(p.db.QueryRowContext(ctx, query,
		r.Name,
		r.Address,
		r.Region.Sido,
		r.Region.Sigungu,
		r.Description,
		r.Phone,
		r.BusinessHours,
		pq.Array(r.Images),
		nullFloat(r.Latitude),
		nullFloat(r.Longitude),
		r.IsEditorCertified,
		r.EditorComment,
		r.IsGroupSpot,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}
	return created, nil
}

// Replace 전체 교체. 투표 카운터는 건드리지 않는다.
func (p *PostgresRestaurantsRepository) Replace(ctx context.Context, id string, r *domain.Restaurant) (*domain.Restaurant, error) {
	query := fmt.Sprintf(`
		UPDATE restaurants SET
			name = $2,
			address = $3,
			region_sido = $4,
			region_sigungu = $5,
			description = $6,
			phone = $7,
			business_hours = $8,
			images = $9,
			latitude = $10,
			longitude = $11,
			is_editor_certified = $12,
			editor_comment = $13,
			is_group_spot = $14,
			updated_at = now()
		WHERE restaurant_id = $1::uuid
		RETURNING %s`, restaurantColumns)

	updated, err := scanRestaurant(p.db.QueryRowContext(ctx, query,
		id,
		r.Name,
		r.Address,
		r.Region.Sido,
		r.Region.Sigungu,
		r.Description,
		r.Phone,
		r.BusinessHours,
		pq.Array(r.Images),
		nullFloat(r.Latitude),
		nullFloat(r.Longitude),
		r.IsEditorCertified,
		r.EditorComment,
		r.IsGroupSpot,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("restaurant not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}
	return updated, nil
}

// patch 필드 → 컬럼 매핑. 순서 고정 (쿼리 결정성)
var patchColumns = []struct {
	field  string
	column string
}{
	{"name", "name"},
	{"address", "address"},
	{"description", "description"},
	{"phone", "phone"},
	{"businessHours", "business_hours"},
	{"images", "images"},
	{"latitude", "latitude"},
	{"longitude", "longitude"},
	{"isEditorCertified", "is_editor_certified"},
	{"editorComment", "editor_comment"},
	{"isGroupSpot", "is_group_spot"},
}

// Patch 검증된 필드 맵을 부분 반영한다 (domain.ValidatePatch 선행 필수).
func (p *PostgresRestaurantsRepository) Patch(ctx context.Context, id string, fields map[string]any) (*domain.Restaurant, error) {
	updates := []string{}
	args := []any{id}
	argIdx := 2

	if region, ok := fields["region"].(domain.Region); ok {
		updates = append(updates, fmt.Sprintf("region_sido = $%d, region_sigungu = $%d", argIdx, argIdx+1))
		args = append(args, region.Sido, region.Sigungu)
		argIdx += 2
	}

	for _, pc := range patchColumns {
		value, ok := fields[pc.field]
		if !ok {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = $%d", pc.column, argIdx))
		switch v := value.(type) {
		case []string:
			args = append(args, pq.Array(v))
		case *float64:
			args = append(args, nullFloat(v))
		default:
			args = append(args, v)
		}
		argIdx++
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}
	updates = append(updates, "updated_at = now()")

	query := fmt.Sprintf(`
		UPDATE restaurants
		SET %s
		WHERE restaurant_id = $1::uuid
		RETURNING %s`, strings.Join(updates, ", "), restaurantColumns)

	updated, err := scanRestaurant(p.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("restaurant not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to patch restaurant: %w", err)
	}
	return updated, nil
}

func (p *PostgresRestaurantsRepository) Delete(ctx context.Context, id string) error {
	result, err := p.db.ExecContext(ctx,
		`DELETE FROM restaurants WHERE restaurant_id = $1::uuid`, id)
	if err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("restaurant not found: %w", ErrNotFound)
	}
	return nil
}

// IncrementVote 단일 UPDATE로 카운터를 원자적으로 증가시킨다.
// read-modify-write가 아니므로 동시 투표에서 갱신 유실이 없다.
func (p *PostgresRestaurantsRepository) IncrementVote(ctx context.Context, id, voteType string) (int, int, error) {
	var column string
	switch voteType {
	case domain.VoteOj:
		column = "oj_count"
	case domain.VoteNoj:
		column = "noj_count"
	default:
		return 0, 0, fmt.Errorf("invalid vote type: %s", voteType)
	}

	query := fmt.Sprintf(`
		UPDATE restaurants
		SET %s = %s + 1, updated_at = now()
		WHERE restaurant_id = $1::uuid
		RETURNING oj_count, noj_count`, column, column)

	var ojCount, nojCount int
	err := p.db.QueryRowContext(ctx, query, id).Scan(&ojCount, &nojCount)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, 0, fmt.Errorf("restaurant not found: %w", ErrNotFound)
		}
		return 0, 0, fmt.Errorf("failed to increment vote: %w", err)
	}
	return ojCount, nojCount, nil
}

// Stats 관리자 집계
func (p *PostgresRestaurantsRepository) Stats(ctx context.Context) (models.AdminStats, error) {
	var stats models.AdminStats
	err := p.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_editor_certified),
			COALESCE(SUM(oj_count), 0),
			COALESCE(SUM(noj_count), 0)
		FROM restaurants`).Scan(&stats.Total, &stats.EditorCertified, &stats.TotalOj, &stats.TotalNoj)
	if err != nil {
		return models.AdminStats{}, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	return stats, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
