package models

// Pagination 목록 응답의 페이지네이션 메타데이터
type Pagination struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination total/page/limit로 메타데이터 계산
func NewPagination(total, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// ListStats 공개 목록 응답의 집계 (동일 필터 기준)
type ListStats struct {
	Total           int `json:"total"`
	EditorCertified int `json:"editorCertified"`
}

// AdminStats 관리자 목록 응답의 전체 집계
type AdminStats struct {
	Total           int `json:"total"`
	EditorCertified int `json:"editorCertified"`
	TotalOj         int `json:"totalOj"`
	TotalNoj        int `json:"totalNoj"`
}
