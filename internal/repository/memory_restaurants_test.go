package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoon0510/loneatkr/internal/domain"
)

func seedRestaurant(t *testing.T, repo *MemoryRestaurantsRepository, r domain.Restaurant) *domain.Restaurant {
	t.Helper()
	created, err := repo.Create(context.Background(), &r)
	require.NoError(t, err)
	return created
}

func TestMemoryList_CertifiedFirstThenNewest(t *testing.T) {
	repo := NewMemoryRestaurantsRepository()
	seedRestaurant(t, repo, domain.Restaurant{Name: "a", Address: "x", Region: domain.Region{Sido: "서울특별시", Sigungu: "강남구"}})
	seedRestaurant(t, repo, domain.Restaurant{Name: "b", Address: "x", Region: domain.Region{Sido: "서울특별시", Sigungu: "강남구"}})
	seedRestaurant(t, repo, domain.Restaurant{Name: "c", Address: "x", Region: domain.Region{Sido: "서울특별시", Sigungu: "강남구"}, IsEditorCertified: true})

	restaurants, total, certified, err := repo.List(context.Background(), RestaurantFilters{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, certified)
	require.Len(t, restaurants, 3)
	// 인증 맛집이 먼저, 나머지는 최신순
	assert.Equal(t, "c", restaurants[0].Name)
	assert.Equal(t, "b", restaurants[1].Name)
	assert.Equal(t, "a", restaurants[2].Name)
}

func TestMemoryList_Pagination(t *testing.T) {
	repo := NewMemoryRestaurantsRepository()
	for _, name := range []string{"a", "b", "c"} {
		seedRestaurant(t, repo, domain.Restaurant{Name: name, Address: "x", Region: domain.Region{Sido: "서울특별시", Sigungu: "강남구"}})
	}

	page2, total, _, err := repo.List(context.Background(), RestaurantFilters{}, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page2, 1)
	assert.Equal(t, "b", page2[0].Name)

	// 범위를 벗어난 페이지는 빈 목록
	page9, total, _, err := repo.List(context.Background(), RestaurantFilters{}, 9, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, page9)
}

func TestMemoryList_Filters(t *testing.T) {
	repo := NewMemoryRestaurantsRepository()
	seedRestaurant(t, repo, domain.Restaurant{Name: "혼밥카츠", Address: "서울 강남구", Region: domain.Region{Sido: "서울특별시", Sigungu: "강남구"}})
	seedRestaurant(t, repo, domain.Restaurant{Name: "혼술포차", Address: "서울 마포구", Region: domain.Region{Sido: "서울특별시", Sigungu: "마포구"}})
	seedRestaurant(t, repo, domain.Restaurant{Name: "곱창", Address: "부산 서면", Description: "단체석", Region: domain.Region{Sido: "부산광역시", Sigungu: "부산진구"}})

	_, total, _, err := repo.List(context.Background(), RestaurantFilters{Sido: "서울특별시"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	_, total, _, err = repo.List(context.Background(), RestaurantFilters{Sido: "서울특별시", Sigungu: "마포구"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	// 검색은 이름/설명/주소 모두 대상
	_, total, _, err = repo.List(context.Background(), RestaurantFilters{Search: "단체석"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, total, _, err = repo.List(context.Background(), RestaurantFilters{Sido: "제주특별자치도"}, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestMemoryCreate_ResetsCounters(t *testing.T) {
	repo := NewMemoryRestaurantsRepository()
	created := seedRestaurant(t, repo, domain.Restaurant{
		Name: "a", Address: "x", Region: domain.Region{Sido: "서울특별시", Sigungu: "강남구"},
		OjCount: 99, NojCount: 99,
	})
	assert.NotEmpty(t, created.ID)
	assert.Zero(t, created.OjCount)
	assert.Zero(t, created.NojCount)
	assert.NotNil(t, created.Images)
}

func TestMemoryReplace_PreservesCounters(t *testing.T) {
	repo := NewMemoryRestaurantsRepository()
	created := seedRestaurant(t, repo, domain.Restaurant{Name: "a", Address: "x", Region: domain.Region{Sido: "서울특별시", Sigungu: "강남구"}})

	_, _, err := repo.IncrementVote(context.Background(), created.ID, domain.VoteOj)
	require.NoError(t, err)

	updated, err := repo.Replace(context.Background(), created.ID, &domain.Restaurant{
		Name: "b", Address: "y", Region: domain.Region{Sido: "부산광역시", Sigungu: "부산진구"},
		OjCount: 77,
	})
	require.NoError(t, err)
	assert.Equal(t, "b", updated.Name)
	assert.Equal(t, 1, updated.OjCount)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestMemoryIncrementVote_Concurrent(t *testing.T) {
	repo := NewMemoryRestaurantsRepository()
	created := seedRestaurant(t, repo, domain.Restaurant{Name: "a", Address: "x", Region: domain.Region{Sido: "서울특별시", Sigungu: "강남구"}})

	const voters = 50
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		voteType := domain.VoteOj
		if i%2 == 1 {
			voteType = domain.VoteNoj
		}
		wg.Add(1)
		go func(vt string) {
			defer wg.Done()
			_, _, err := repo.IncrementVote(context.Background(), created.ID, vt)
			assert.NoError(t, err)
		}(voteType)
	}
	wg.Wait()

	got, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	// 동시 투표에서 갱신 유실 없음
	assert.Equal(t, 25, got.OjCount)
	assert.Equal(t, 25, got.NojCount)
}

func TestMemoryDeleteAndGet_NotFound(t *testing.T) {
	repo := NewMemoryRestaurantsRepository()
	created := seedRestaurant(t, repo, domain.Restaurant{Name: "a", Address: "x", Region: domain.Region{Sido: "서울특별시", Sigungu: "강남구"}})

	require.NoError(t, repo.Delete(context.Background(), created.ID))

	_, err := repo.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), created.ID), ErrNotFound)
}

func TestMemoryListGroupSpots(t *testing.T) {
	repo := NewMemoryRestaurantsRepository()
	seedRestaurant(t, repo, domain.Restaurant{Name: "a", Address: "x", Region: domain.Region{Sido: "서울특별시", Sigungu: "강남구"}})
	seedRestaurant(t, repo, domain.Restaurant{Name: "b", Address: "x", Region: domain.Region{Sido: "서울특별시", Sigungu: "강남구"}, IsGroupSpot: true})

	spots, err := repo.ListGroupSpots(context.Background())
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Equal(t, "b", spots[0].Name)
}
