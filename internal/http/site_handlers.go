package httpapi

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hoon0510/loneatkr/internal/repository"
)

// SiteHandler sitemap.xml / robots.txt 생성
type SiteHandler struct {
	repo    repository.RestaurantsRepo
	siteURL string
	logger  *zap.Logger
}

func NewSiteHandler(repo repository.RestaurantsRepo, siteURL string, logger *zap.Logger) *SiteHandler {
	return &SiteHandler{repo: repo, siteURL: siteURL, logger: logger}
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap GET /sitemap.xml
// 정적 페이지 + 맛집 상세 페이지. 조회 실패 시 정적 페이지만 내려준다.
func (h *SiteHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	today := time.Now().Format("2006-01-02")
	urls := []sitemapURL{
		{Loc: h.siteURL, LastMod: today, ChangeFreq: "daily", Priority: "1.0"},
		{Loc: h.siteURL + "/list", LastMod: today, ChangeFreq: "daily", Priority: "0.9"},
		{Loc: h.siteURL + "/group-spots", LastMod: today, ChangeFreq: "daily", Priority: "0.8"},
	}

	restaurants, err := h.repo.ListAll(r.Context())
	if err != nil {
		h.logger.Warn("failed to load restaurants for sitemap", zap.Error(err))
	} else {
		for _, restaurant := range restaurants {
			urls = append(urls, sitemapURL{
				Loc:        fmt.Sprintf("%s/detail/%s", h.siteURL, restaurant.ID),
				LastMod:    restaurant.UpdatedAt.Format("2006-01-02"),
				ChangeFreq: "weekly",
				Priority:   "0.7",
			})
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	_ = xml.NewEncoder(w).Encode(sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

// Robots GET /robots.txt
func (h *SiteHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /admin/\nDisallow: /api/\n\nSitemap: %s/sitemap.xml\n", h.siteURL)
}
