package httpapi

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hoon0510/loneatkr/internal/service"
)

// AdminTokenCookie 관리자 토큰 쿠키 이름
const AdminTokenCookie = "admin_token"

const adminCookieMaxAge = int(service.TokenTTL / time.Second)

// AuthGate 관리자 API/페이지 접근 게이트
type AuthGate struct {
	auth         *service.AuthService
	secureCookie bool
	logger       *zap.Logger
}

func NewAuthGate(auth *service.AuthService, secureCookie bool, logger *zap.Logger) *AuthGate {
	return &AuthGate{auth: auth, secureCookie: secureCookie, logger: logger}
}

func (g *AuthGate) setAdminCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   adminCookieMaxAge,
		HttpOnly: true,
		Secure:   g.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAdminCookie 즉시 만료 쿠키로 덮어쓴다 (Max-Age=0)
func (g *AuthGate) clearAdminCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireAdmin 관리자 API 게이트.
// 쿠키 존재 → 서명/만료 검증 순서로 확인하고, 실패 시 작업 실행 전에 401을 반환한다.
func (g *AuthGate) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AdminTokenCookie)
		if err != nil || cookie.Value == "" {
			writeJSON(w, http.StatusUnauthorized, Fail("인증이 필요합니다."))
			return
		}
		if _, _, err := g.auth.VerifyToken(cookie.Value); err != nil {
			writeJSON(w, http.StatusUnauthorized, Fail("유효하지 않은 토큰입니다."))
			return
		}
		next(w, r)
	}
}

// GuardAdminPages /admin/* 페이지 라우트 가드.
// API 게이트와 별도의 검사 지점이지만 동일한 토큰 검증으로 동일한 판정을 내린다.
// 미인증 브라우저 탐색은 로그인 페이지로 리다이렉트한다.
func (g *AuthGate) GuardAdminPages(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/admin/login") {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(AdminTokenCookie)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/admin/login", http.StatusFound)
			return
		}
		if _, _, err := g.auth.VerifyToken(cookie.Value); err != nil {
			g.clearAdminCookie(w)
			http.Redirect(w, r, "/admin/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
