package httpapi

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hoon0510/loneatkr/internal/domain"
	"github.com/hoon0510/loneatkr/internal/models"
	"github.com/hoon0510/loneatkr/internal/repository"
)

// RestaurantHandler 공개 API: 목록/상세/같이 가는 가게/투표
type RestaurantHandler struct {
	repo   repository.RestaurantsRepo
	logger *zap.Logger
}

func NewRestaurantHandler(repo repository.RestaurantsRepo, logger *zap.Logger) *RestaurantHandler {
	return &RestaurantHandler{repo: repo, logger: logger}
}

// List GET /api/restaurants
// Query: sido, sigungu, q, editorCertified, page(기본 1), limit(기본 12, 최대 100)
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := repository.RestaurantFilters{
		Sido:            query.Get("sido"),
		Sigungu:         query.Get("sigungu"),
		Search:          query.Get("q"),
		EditorCertified: query.Get("editorCertified") == "true",
	}
	page := parseIntDefault(query.Get("page"), 1)
	if page < 1 {
		page = 1
	}
	limit := parseIntDefault(query.Get("limit"), repository.DefaultPageSize)
	if limit < 1 {
		limit = repository.DefaultPageSize
	}
	if limit > repository.MaxPageSize {
		limit = repository.MaxPageSize
	}

	restaurants, total, certified, err := h.repo.List(r.Context(), filters, page, limit)
	if err != nil {
		h.logger.Error("failed to list restaurants", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("맛집 목록을 불러오는데 실패했습니다."))
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"restaurants": restaurants,
		"pagination":  models.NewPagination(total, page, limit),
		"stats": models.ListStats{
			Total:           total,
			EditorCertified: certified,
		},
	}))
}

// GetByID GET /api/restaurants/{id}
func (h *RestaurantHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := uuid.Parse(id); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("유효하지 않은 ID입니다."))
		return
	}

	restaurant, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("맛집을 찾을 수 없습니다."))
			return
		}
		h.logger.Error("failed to get restaurant", zap.String("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("맛집 정보를 불러오는데 실패했습니다."))
		return
	}

	writeJSON(w, http.StatusOK, Ok(restaurant))
}

// GroupSpots GET /api/group-spots
func (h *RestaurantHandler) GroupSpots(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.repo.ListGroupSpots(r.Context())
	if err != nil {
		h.logger.Error("failed to list group spots", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("같이 가는 가게를 불러오는데 실패했습니다."))
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"restaurants": restaurants,
		"total":       len(restaurants),
	}))
}

type voteRequest struct {
	RestaurantID string `json:"restaurantId"`
	VoteType     string `json:"voteType"`
}

// Vote POST /api/vote
// Body: {restaurantId, voteType: "oj"|"noj"}
// 인증/중복 방지 없음. 저장소의 원자적 증가에만 의존한다.
func (h *RestaurantHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("요청 형식이 올바르지 않습니다."))
		return
	}

	if req.RestaurantID == "" || req.VoteType == "" {
		writeJSON(w, http.StatusBadRequest, Fail("필수 파라미터가 누락되었습니다."))
		return
	}
	if !domain.IsValidVoteType(req.VoteType) {
		writeJSON(w, http.StatusBadRequest, Fail("유효하지 않은 투표 유형입니다."))
		return
	}
	if _, err := uuid.Parse(req.RestaurantID); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("유효하지 않은 맛집 ID입니다."))
		return
	}

	ojCount, nojCount, err := h.repo.IncrementVote(r.Context(), req.RestaurantID, req.VoteType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("맛집을 찾을 수 없습니다."))
			return
		}
		h.logger.Error("failed to process vote",
			zap.String("restaurantId", req.RestaurantID),
			zap.String("voteType", req.VoteType),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("투표 처리에 실패했습니다."))
		return
	}

	writeJSON(w, http.StatusOK, OkMessage(map[string]any{
		"ojCount":  ojCount,
		"nojCount": nojCount,
	}, "투표가 완료되었습니다."))
}
