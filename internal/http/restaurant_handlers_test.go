package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hoon0510/loneatkr/internal/domain"
	"github.com/hoon0510/loneatkr/internal/models"
	"github.com/hoon0510/loneatkr/internal/repository"
	"github.com/hoon0510/loneatkr/internal/service"
	"github.com/hoon0510/loneatkr/internal/upload"
)

// 응답 디코딩용 (Data는 테스트별 구조로 다시 언마샬)
type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type listData struct {
	Restaurants []domain.Restaurant `json:"restaurants"`
	Pagination  models.Pagination   `json:"pagination"`
	Stats       models.ListStats    `json:"stats"`
}

type testServer struct {
	router      *Router
	restaurants *repository.MemoryRestaurantsRepository
	admins      *repository.MemoryAdminsRepository
	auth        *service.AuthService
}

var (
	testHashOnce sync.Once
	testHash     string
)

// bcrypt cost가 높아서 해시는 한 번만 만든다
func testPasswordHash(t *testing.T) string {
	t.Helper()
	testHashOnce.Do(func() {
		hash, err := service.HashPassword("test-password")
		require.NoError(t, err)
		testHash = hash
	})
	return testHash
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()

	restaurants := repository.NewMemoryRestaurantsRepository()
	admins := repository.NewMemoryAdminsRepository()
	_, err := admins.Upsert(context.Background(), "admin", testPasswordHash(t))
	require.NoError(t, err)

	auth := service.NewAuthService(admins, []byte("test-secret"), logger)
	gate := NewAuthGate(auth, false, logger)
	uploadStore := upload.NewStore(t.TempDir())

	router := NewRouter(logger)
	router.RegisterPublicRoutes(NewRestaurantHandler(restaurants, logger))
	router.RegisterAuthRoutes(NewAuthHandler(auth, gate, logger))
	router.RegisterAdminRoutes(NewAdminRestaurantHandler(restaurants, logger), NewUploadHandler(uploadStore, logger), gate)
	router.RegisterSiteRoutes(NewSiteHandler(restaurants, "https://loneat.kr", logger), "")

	return &testServer{router: router, restaurants: restaurants, admins: admins, auth: auth}
}

func (ts *testServer) do(t *testing.T, method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, env testEnvelope, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func (ts *testServer) seed(t *testing.T, r domain.Restaurant) *domain.Restaurant {
	t.Helper()
	created, err := ts.restaurants.Create(context.Background(), &r)
	require.NoError(t, err)
	return created
}

func sampleRestaurant(name, sido, sigungu string) domain.Restaurant {
	return domain.Restaurant{
		Name:    name,
		Address: sido + " " + sigungu + " 어딘가 1",
		Region:  domain.Region{Sido: sido, Sigungu: sigungu},
	}
}

func TestPublicList_FilterBySido(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t, sampleRestaurant("혼밥카츠", "서울특별시", "강남구"))
	ts.seed(t, sampleRestaurant("혼술포차", "서울특별시", "마포구"))
	ts.seed(t, sampleRestaurant("곱창", "부산광역시", "부산진구"))

	rec := ts.do(t, http.MethodGet, "/api/restaurants?sido=서울특별시", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var data listData
	decodeData(t, env, &data)
	assert.Len(t, data.Restaurants, 2)
	assert.Equal(t, 2, data.Stats.Total)
	for _, r := range data.Restaurants {
		assert.Equal(t, "서울특별시", r.Region.Sido)
	}
}

func TestPublicList_UnmatchedRegionIsEmpty(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t, sampleRestaurant("혼밥카츠", "서울특별시", "강남구"))

	rec := ts.do(t, http.MethodGet, "/api/restaurants?sido=제주특별자치도", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data listData
	decodeData(t, decodeEnvelope(t, rec), &data)
	assert.Empty(t, data.Restaurants)
	assert.Zero(t, data.Pagination.Total)
	assert.Zero(t, data.Stats.Total)
}

func TestPublicList_Pagination(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t, sampleRestaurant("a", "서울특별시", "강남구"))
	ts.seed(t, sampleRestaurant("b", "서울특별시", "강남구"))
	ts.seed(t, sampleRestaurant("c", "서울특별시", "강남구"))

	rec := ts.do(t, http.MethodGet, "/api/restaurants?page=2&limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data listData
	decodeData(t, decodeEnvelope(t, rec), &data)
	require.Len(t, data.Restaurants, 1)
	assert.Equal(t, 3, data.Pagination.Total)
	assert.Equal(t, 2, data.Pagination.Page)
	assert.Equal(t, 3, data.Pagination.TotalPages)
	assert.True(t, data.Pagination.HasPrev)
	assert.True(t, data.Pagination.HasNext)

	rec = ts.do(t, http.MethodGet, "/api/restaurants?page=3&limit=1", nil)
	decodeData(t, decodeEnvelope(t, rec), &data)
	require.Len(t, data.Restaurants, 1)
	assert.False(t, data.Pagination.HasNext)
	assert.True(t, data.Pagination.HasPrev)
}

func TestPublicList_CertifiedFirst(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t, sampleRestaurant("일반1", "서울특별시", "강남구"))
	ts.seed(t, sampleRestaurant("일반2", "서울특별시", "강남구"))
	certified := sampleRestaurant("인증맛집", "서울특별시", "강남구")
	certified.IsEditorCertified = true
	ts.seed(t, certified)

	rec := ts.do(t, http.MethodGet, "/api/restaurants", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data listData
	decodeData(t, decodeEnvelope(t, rec), &data)
	require.Len(t, data.Restaurants, 3)
	assert.Equal(t, "인증맛집", data.Restaurants[0].Name)
	assert.Equal(t, 1, data.Stats.EditorCertified)
}

func TestPublicList_BadPageParamsFallBackToDefaults(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t, sampleRestaurant("a", "서울특별시", "강남구"))

	rec := ts.do(t, http.MethodGet, "/api/restaurants?page=abc&limit=-5", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data listData
	decodeData(t, decodeEnvelope(t, rec), &data)
	assert.Equal(t, 1, data.Pagination.Page)
	assert.Equal(t, repository.DefaultPageSize, data.Pagination.Limit)
}

func TestPublicGetByID(t *testing.T) {
	ts := newTestServer(t)
	created := ts.seed(t, sampleRestaurant("혼밥카츠", "서울특별시", "강남구"))

	rec := ts.do(t, http.MethodGet, "/api/restaurants/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Restaurant
	decodeData(t, decodeEnvelope(t, rec), &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "혼밥카츠", got.Name)
}

func TestPublicGetByID_InvalidID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/restaurants/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "유효하지 않은 ID입니다.", env.Error)
}

func TestPublicGetByID_NotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/restaurants/99999999-9999-9999-9999-999999999999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "맛집을 찾을 수 없습니다.", decodeEnvelope(t, rec).Error)
}

func TestGroupSpots(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t, sampleRestaurant("혼밥카츠", "서울특별시", "강남구"))
	group := sampleRestaurant("다같이곱창", "부산광역시", "부산진구")
	group.IsGroupSpot = true
	ts.seed(t, group)

	rec := ts.do(t, http.MethodGet, "/api/group-spots", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Restaurants []domain.Restaurant `json:"restaurants"`
		Total       int                 `json:"total"`
	}
	decodeData(t, decodeEnvelope(t, rec), &data)
	assert.Equal(t, 1, data.Total)
	require.Len(t, data.Restaurants, 1)
	assert.Equal(t, "다같이곱창", data.Restaurants[0].Name)
}

func TestVote(t *testing.T) {
	ts := newTestServer(t)
	created := ts.seed(t, sampleRestaurant("혼밥카츠", "서울특별시", "강남구"))

	rec := ts.do(t, http.MethodPost, "/api/vote",
		map[string]any{"restaurantId": created.ID, "voteType": "oj"})
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "투표가 완료되었습니다.", env.Message)

	var counts struct {
		OjCount  int `json:"ojCount"`
		NojCount int `json:"nojCount"`
	}
	decodeData(t, env, &counts)
	assert.Equal(t, 1, counts.OjCount)
	assert.Zero(t, counts.NojCount)
}

func TestVote_BadRequests(t *testing.T) {
	ts := newTestServer(t)
	created := ts.seed(t, sampleRestaurant("혼밥카츠", "서울특별시", "강남구"))

	cases := []struct {
		name     string
		body     map[string]any
		wantCode int
		wantErr  string
	}{
		{"missing fields", map[string]any{}, http.StatusBadRequest, "필수 파라미터가 누락되었습니다."},
		{"invalid vote type", map[string]any{"restaurantId": created.ID, "voteType": "maybe"}, http.StatusBadRequest, "유효하지 않은 투표 유형입니다."},
		{"invalid id", map[string]any{"restaurantId": "abc", "voteType": "oj"}, http.StatusBadRequest, "유효하지 않은 맛집 ID입니다."},
		{"unknown id", map[string]any{"restaurantId": "99999999-9999-9999-9999-999999999999", "voteType": "noj"}, http.StatusNotFound, "맛집을 찾을 수 없습니다."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/vote", tc.body)
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantErr, decodeEnvelope(t, rec).Error)
		})
	}

	// 실패한 요청들은 카운터를 건드리지 않는다
	got, err := ts.restaurants.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Zero(t, got.OjCount)
	assert.Zero(t, got.NojCount)
}

func TestVote_Concurrent(t *testing.T) {
	ts := newTestServer(t)
	created := ts.seed(t, sampleRestaurant("혼밥카츠", "서울특별시", "강남구"))

	const voters = 30
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		voteType := "oj"
		if i%3 == 0 {
			voteType = "noj"
		}
		wg.Add(1)
		go func(vt string) {
			defer wg.Done()
			rec := ts.do(t, http.MethodPost, "/api/vote",
				map[string]any{"restaurantId": created.ID, "voteType": vt})
			assert.Equal(t, http.StatusOK, rec.Code)
		}(voteType)
	}
	wg.Wait()

	got, err := ts.restaurants.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, voters, got.OjCount+got.NojCount)
	assert.Equal(t, 10, got.NojCount)
}

func TestPublicRoutes_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/restaurants", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/vote", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
