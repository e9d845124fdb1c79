package httpapi

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hoon0510/loneatkr/internal/domain"
	"github.com/hoon0510/loneatkr/internal/repository"
)

// AdminRestaurantHandler 관리자 CRUD API
type AdminRestaurantHandler struct {
	repo   repository.RestaurantsRepo
	logger *zap.Logger
}

func NewAdminRestaurantHandler(repo repository.RestaurantsRepo, logger *zap.Logger) *AdminRestaurantHandler {
	return &AdminRestaurantHandler{repo: repo, logger: logger}
}

// List GET /api/admin/restaurants
// 전체 목록과 집계(전체/인증/투표 합계)를 함께 반환한다.
func (h *AdminRestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.repo.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list restaurants for admin", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("맛집 목록을 불러오는데 실패했습니다."))
		return
	}

	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to aggregate stats", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("맛집 목록을 불러오는데 실패했습니다."))
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"restaurants": restaurants,
		"stats":       stats,
	}))
}

// Create POST /api/admin/restaurants
func (h *AdminRestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.Restaurant
	if err := readBodyJSON(r, 1<<20, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("요청 형식이 올바르지 않습니다."))
		return
	}

	input.Normalize()
	if err := input.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}

	created, err := h.repo.Create(r.Context(), &input)
	if err != nil {
		h.logger.Error("failed to create restaurant", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("맛집 등록에 실패했습니다."))
		return
	}

	writeJSON(w, http.StatusOK, OkMessage(created, "맛집이 등록되었습니다."))
}

// GetByID GET /api/admin/restaurants/{id}
func (h *AdminRestaurantHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
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

// Replace PUT /api/admin/restaurants/{id}
// 전체 교체. 등록과 동일한 필수 필드 검증을 거치고 투표 카운터는 유지한다.
func (h *AdminRestaurantHandler) Replace(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := uuid.Parse(id); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("유효하지 않은 ID입니다."))
		return
	}

	var input domain.Restaurant
	if err := readBodyJSON(r, 1<<20, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("요청 형식이 올바르지 않습니다."))
		return
	}

	input.Normalize()
	if err := input.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}

	updated, err := h.repo.Replace(r.Context(), id, &input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("맛집을 찾을 수 없습니다."))
			return
		}
		h.logger.Error("failed to update restaurant", zap.String("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("맛집 수정에 실패했습니다."))
		return
	}

	writeJSON(w, http.StatusOK, OkMessage(updated, "맛집이 수정되었습니다."))
}

// Patch PATCH /api/admin/restaurants/{id}
// 등록과 동일한 허용 필드 목록으로 검증된 부분 수정만 반영한다.
func (h *AdminRestaurantHandler) Patch(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := uuid.Parse(id); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("유효하지 않은 ID입니다."))
		return
	}

	var body map[string]any
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("요청 형식이 올바르지 않습니다."))
		return
	}

	fields, err := domain.ValidatePatch(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}

	updated, err := h.repo.Patch(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("맛집을 찾을 수 없습니다."))
			return
		}
		h.logger.Error("failed to patch restaurant", zap.String("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("맛집 수정에 실패했습니다."))
		return
	}

	writeJSON(w, http.StatusOK, Ok(updated))
}

// Delete DELETE /api/admin/restaurants/{id}
// 하드 삭제 (소프트 삭제 없음)
func (h *AdminRestaurantHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := uuid.Parse(id); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("유효하지 않은 ID입니다."))
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("맛집을 찾을 수 없습니다."))
			return
		}
		h.logger.Error("failed to delete restaurant", zap.String("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("맛집 삭제에 실패했습니다."))
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "맛집이 삭제되었습니다."})
}
