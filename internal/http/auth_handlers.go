package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hoon0510/loneatkr/internal/service"
)

// AuthHandler 관리자 로그인/로그아웃
type AuthHandler struct {
	auth   *service.AuthService
	gate   *AuthGate
	logger *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, gate *AuthGate, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, gate: gate, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login POST /api/admin/login
// 성공 시 http-only 쿠키로 토큰을 내려준다.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("요청 형식이 올바르지 않습니다."))
		return
	}
	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, Fail("사용자명과 비밀번호를 입력해주세요."))
		return
	}

	token, admin, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, Fail("사용자명 또는 비밀번호가 올바르지 않습니다."))
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("로그인 처리 중 오류가 발생했습니다."))
		return
	}

	h.gate.setAdminCookie(w, token)
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"token": token,
		"user": map[string]any{
			"id":       admin.ID,
			"username": admin.Username,
		},
	}))
}

// Logout POST /api/admin/logout
// 즉시 만료되는 쿠키로 덮어쓴다.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.gate.clearAdminCookie(w)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "로그아웃되었습니다."})
}
