package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router 표준 라이브러리 http.ServeMux 기반 (서드파티 라우터 의존성 없음)
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleHandler http.Handler 인터페이스 지원 (정적 파일 등)
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// pathID prefix 뒤의 단일 경로 세그먼트를 꺼낸다. 없거나 하위 경로면 "" 반환.
func pathID(path, prefix string) string {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}

// RegisterPublicRoutes 공개 API (인증 불필요)
func (r *Router) RegisterPublicRoutes(h *RestaurantHandler) {
	r.Handle("/api/restaurants", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.List(w, req)
	})

	r.Handle("/api/restaurants/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		id := pathID(req.URL.Path, "/api/restaurants/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.GetByID(w, req, id)
	})

	r.Handle("/api/group-spots", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.GroupSpots(w, req)
	})

	r.Handle("/api/vote", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Vote(w, req)
	})
}

// RegisterAuthRoutes 로그인/로그아웃 (게이트 없음)
func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/api/admin/login", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Login(w, req)
	})

	r.Handle("/api/admin/logout", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Logout(w, req)
	})
}

// RegisterAdminRoutes 관리자 API. 모든 라우트가 토큰 게이트를 거친다.
func (r *Router) RegisterAdminRoutes(admin *AdminRestaurantHandler, uploadHandler *UploadHandler, gate *AuthGate) {
	r.Handle("/api/admin/restaurants", gate.RequireAdmin(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			admin.List(w, req)
		case http.MethodPost:
			admin.Create(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	r.Handle("/api/admin/restaurants/", gate.RequireAdmin(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/api/admin/restaurants/export" {
			if req.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			admin.Export(w, req)
			return
		}

		id := pathID(req.URL.Path, "/api/admin/restaurants/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch req.Method {
		case http.MethodGet:
			admin.GetByID(w, req, id)
		case http.MethodPut:
			admin.Replace(w, req, id)
		case http.MethodPatch:
			admin.Patch(w, req, id)
		case http.MethodDelete:
			admin.Delete(w, req, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	r.Handle("/api/admin/upload", gate.RequireAdmin(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		uploadHandler.Upload(w, req)
	}))
}

// RegisterSiteRoutes sitemap/robots + 업로드 파일 정적 서빙
func (r *Router) RegisterSiteRoutes(site *SiteHandler, uploadDir string) {
	r.Handle("/sitemap.xml", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		site.Sitemap(w, req)
	})

	r.Handle("/robots.txt", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		site.Robots(w, req)
	})

	if uploadDir != "" {
		r.HandleHandler("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	}
}

// RegisterAdminPages /admin/* 페이지 서빙 (페이지 게이트 적용)
func (r *Router) RegisterAdminPages(gate *AuthGate, webDir string) {
	if webDir == "" {
		return
	}
	r.HandleHandler("/admin/", gate.GuardAdminPages(http.FileServer(http.Dir(webDir))))
}
