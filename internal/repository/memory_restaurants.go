package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hoon0510/loneatkr/internal/domain"
	"github.com/hoon0510/loneatkr/internal/models"
)

// MemoryRestaurantsRepository 인메모리 구현 (핸들러 테스트용)
type MemoryRestaurantsRepository struct {
	mu    sync.RWMutex
	items map[string]*memoryRestaurant
	seq   int64
}

type memoryRestaurant struct {
	restaurant domain.Restaurant
	seq        int64 // 생성 순서 (created_at 동률 시 안정 정렬용)
}

func NewMemoryRestaurantsRepository() *MemoryRestaurantsRepository {
	return &MemoryRestaurantsRepository{items: map[string]*memoryRestaurant{}}
}

var _ RestaurantsRepo = (*MemoryRestaurantsRepository)(nil)

func (m *MemoryRestaurantsRepository) notFound() error {
	return fmt.Errorf("restaurant not found: %w", ErrNotFound)
}

func matches(r *domain.Restaurant, filters RestaurantFilters) bool {
	if filters.Sido != "" && r.Region.Sido != filters.Sido {
		return false
	}
	if filters.Sigungu != "" && r.Region.Sigungu != filters.Sigungu {
		return false
	}
	if filters.EditorCertified && !r.IsEditorCertified {
		return false
	}
	if filters.Search != "" {
		q := strings.ToLower(filters.Search)
		if !strings.Contains(strings.ToLower(r.Name), q) &&
			!strings.Contains(strings.ToLower(r.Description), q) &&
			!strings.Contains(strings.ToLower(r.Address), q) {
			return false
		}
	}
	return true
}

func (m *MemoryRestaurantsRepository) snapshot(filters RestaurantFilters) []*memoryRestaurant {
	out := []*memoryRestaurant{}
	for _, item := range m.items {
		if matches(&item.restaurant, filters) {
			out = append(out, item)
		}
	}
	// 최신순 (seq가 created_at 동률을 안정화)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].restaurant.CreatedAt.Equal(out[j].restaurant.CreatedAt) {
			return out[i].restaurant.CreatedAt.After(out[j].restaurant.CreatedAt)
		}
		return out[i].seq > out[j].seq
	})
	return out
}

func (m *MemoryRestaurantsRepository) List(ctx context.Context, filters RestaurantFilters, page, limit int) ([]domain.Restaurant, int, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := m.snapshot(filters)
	// 에디터 인증 우선
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].restaurant.IsEditorCertified && !matched[j].restaurant.IsEditorCertified
	})

	total := len(matched)
	certified := 0
	for _, item := range matched {
		if item.restaurant.IsEditorCertified {
			certified++
		}
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	restaurants := make([]domain.Restaurant, 0, end-start)
	for _, item := range matched[start:end] {
		restaurants = append(restaurants, item.restaurant)
	}
	return restaurants, total, certified, nil
}

func (m *MemoryRestaurantsRepository) ListAll(ctx context.Context) ([]domain.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []domain.Restaurant{}
	for _, item := range m.snapshot(RestaurantFilters{}) {
		out = append(out, item.restaurant)
	}
	return out, nil
}

func (m *MemoryRestaurantsRepository) ListGroupSpots(ctx context.Context) ([]domain.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []domain.Restaurant{}
	for _, item := range m.snapshot(RestaurantFilters{}) {
		if item.restaurant.IsGroupSpot {
			out = append(out, item.restaurant)
		}
	}
	return out, nil
}

func (m *MemoryRestaurantsRepository) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return nil, m.notFound()
	}
	r := item.restaurant
	return &r, nil
}

func (m *MemoryRestaurantsRepository) Create(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	created := *r
	created.ID = uuid.NewString()
	created.OjCount = 0
	created.NojCount = 0
	created.CreatedAt = now
	created.UpdatedAt = now
	if created.Images == nil {
		created.Images = []string{}
	}

	m.seq++
	m.items[created.ID] = &memoryRestaurant{restaurant: created, seq: m.seq}
	out := created
	return &out, nil
}

func (m *MemoryRestaurantsRepository) Replace(ctx context.Context, id string, r *domain.Restaurant) (*domain.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return nil, m.notFound()
	}

	updated := *r
	updated.ID = id
	updated.OjCount = item.restaurant.OjCount
	updated.NojCount = item.restaurant.NojCount
	updated.CreatedAt = item.restaurant.CreatedAt
	updated.UpdatedAt = time.Now()
	if updated.Images == nil {
		updated.Images = []string{}
	}

	item.restaurant = updated
	out := updated
	return &out, nil
}

func (m *MemoryRestaurantsRepository) Patch(ctx context.Context, id string, fields map[string]any) (*domain.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return nil, m.notFound()
	}

	r := &item.restaurant
	for key, value := range fields {
		switch key {
		case "name":
			r.Name = value.(string)
		case "address":
			r.Address = value.(string)
		case "region":
			r.Region = value.(domain.Region)
		case "description":
			r.Description = value.(string)
		case "phone":
			r.Phone = value.(string)
		case "businessHours":
			r.BusinessHours = value.(string)
		case "images":
			r.Images = value.([]string)
		case "latitude":
			r.Latitude = value.(*float64)
		case "longitude":
			r.Longitude = value.(*float64)
		case "isEditorCertified":
			r.IsEditorCertified = value.(bool)
		case "editorComment":
			r.EditorComment = value.(string)
		case "isGroupSpot":
			r.IsGroupSpot = value.(bool)
		}
	}
	r.UpdatedAt = time.Now()
	out := *r
	return &out, nil
}

func (m *MemoryRestaurantsRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return m.notFound()
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryRestaurantsRepository) IncrementVote(ctx context.Context, id, voteType string) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return 0, 0, m.notFound()
	}

	switch voteType {
	case domain.VoteOj:
		item.restaurant.OjCount++
	case domain.VoteNoj:
		item.restaurant.NojCount++
	default:
		return 0, 0, fmt.Errorf("invalid vote type: %s", voteType)
	}
	item.restaurant.UpdatedAt = time.Now()
	return item.restaurant.OjCount, item.restaurant.NojCount, nil
}

func (m *MemoryRestaurantsRepository) Stats(ctx context.Context) (models.AdminStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var stats models.AdminStats
	for _, item := range m.items {
		stats.Total++
		if item.restaurant.IsEditorCertified {
			stats.EditorCertified++
		}
		stats.TotalOj += item.restaurant.OjCount
		stats.TotalNoj += item.restaurant.NojCount
	}
	return stats, nil
}
