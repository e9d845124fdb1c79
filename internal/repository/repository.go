package repository

import (
	"context"
	"errors"

	"github.com/hoon0510/loneatkr/internal/domain"
	"github.com/hoon0510/loneatkr/internal/models"
)

// ErrNotFound 요청한 레코드가 존재하지 않음 (핸들러에서 404로 매핑)
var ErrNotFound = errors.New("record not found")

// RestaurantFilters 공개 목록 조회 필터
// Sido/Sigungu는 완전 일치, Search는 이름/설명/주소 부분 일치(대소문자 무시)
type RestaurantFilters struct {
	Sido            string
	Sigungu         string
	Search          string
	EditorCertified bool
}

// RestaurantsRepo 맛집 저장소 인터페이스
type RestaurantsRepo interface {
	// List 필터/정렬/페이지네이션 적용 목록.
	// 전체 매칭 수와 동일 필터의 에디터 인증 수를 함께 반환한다.
	List(ctx context.Context, filters RestaurantFilters, page, limit int) ([]domain.Restaurant, int, int, error)

	// ListAll 관리자 목록 (최신순 전체)
	ListAll(ctx context.Context) ([]domain.Restaurant, error)

	// ListGroupSpots 같이 가는 가게 목록 (최신순 전체)
	ListGroupSpots(ctx context.Context) ([]domain.Restaurant, error)

	Get(ctx context.Context, id string) (*domain.Restaurant, error)

	// Create 카운터를 0으로 초기화하고 생성된 레코드를 반환한다.
	Create(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error)

	// Replace 전체 교체. 투표 카운터는 건드리지 않는다.
	Replace(ctx context.Context, id string, r *domain.Restaurant) (*domain.Restaurant, error)

	// Patch domain.ValidatePatch로 검증된 필드 맵을 반영한다.
	Patch(ctx context.Context, id string, fields map[string]any) (*domain.Restaurant, error)

	Delete(ctx context.Context, id string) error

	// IncrementVote 단일 원자적 증가. 갱신된 (ojCount, nojCount)를 반환한다.
	IncrementVote(ctx context.Context, id, voteType string) (int, int, error)

	// Stats 관리자 집계 (전체 수, 인증 수, 투표 합계)
	Stats(ctx context.Context) (models.AdminStats, error)
}

// AdminsRepo 관리자 계정 저장소 인터페이스
type AdminsRepo interface {
	// GetByUsername password_hash를 포함해 조회한다 (로그인 검증 전용).
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)

	// Upsert 부트스트랩 스크립트용: 없으면 생성, 있으면 해시 갱신.
	Upsert(ctx context.Context, username, passwordHash string) (*domain.Admin, error)
}
