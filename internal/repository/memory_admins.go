package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hoon0510/loneatkr/internal/domain"
)

// MemoryAdminsRepository 인메모리 구현 (테스트용)
type MemoryAdminsRepository struct {
	mu         sync.RWMutex
	byUsername map[string]domain.Admin
}

func NewMemoryAdminsRepository() *MemoryAdminsRepository {
	return &MemoryAdminsRepository{byUsername: map[string]domain.Admin{}}
}

var _ AdminsRepo = (*MemoryAdminsRepository)(nil)

func (m *MemoryAdminsRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	admin, ok := m.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("admin not found: %w", ErrNotFound)
	}
	return &admin, nil
}

func (m *MemoryAdminsRepository) Upsert(ctx context.Context, username, passwordHash string) (*domain.Admin, error) {
	if !domain.IsValidUsername(username) {
		return nil, fmt.Errorf("사용자명은 영문 소문자, 숫자, 언더스코어만 사용할 수 있습니다 (3~50자)")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	admin, ok := m.byUsername[username]
	if !ok {
		admin = domain.Admin{
			ID:        uuid.NewString(),
			Username:  username,
			CreatedAt: now,
		}
	}
	admin.PasswordHash = passwordHash
	admin.UpdatedAt = now
	m.byUsername[username] = admin
	return &admin, nil
}
