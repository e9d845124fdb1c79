package httpapi

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/hoon0510/loneatkr/internal/upload"
)

// UploadHandler 관리자 이미지 업로드
type UploadHandler struct {
	store  *upload.Store
	logger *zap.Logger
}

func NewUploadHandler(store *upload.Store, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{store: store, logger: logger}
}

// Upload POST /api/admin/upload (multipart, 필드명 "images")
// 배치 중 하나라도 유효하지 않으면 전체 요청을 거부한다.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("요청 형식이 올바르지 않습니다."))
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("업로드할 파일이 없습니다."))
		return
	}

	// 저장 전에 전체 배치를 먼저 검증한다
	for _, fh := range files {
		if err := upload.Validate(fh); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
	}

	urls, err := h.store.SaveAll(files)
	if err != nil {
		h.logger.Error("failed to save uploaded images", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("이미지 업로드에 실패했습니다."))
		return
	}

	writeJSON(w, http.StatusOK, OkMessage(
		map[string]any{"urls": urls},
		fmt.Sprintf("%d개의 이미지가 업로드되었습니다.", len(urls)),
	))
}
