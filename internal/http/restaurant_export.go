package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/hoon0510/loneatkr/internal/domain"
)

// restaurantExportHeader 관리자 엑셀 내보내기 표 헤더
var restaurantExportHeader = []string{
	"이름",
	"주소",
	"시/도",
	"시/군/구",
	"전화번호",
	"영업시간",
	"에디터 인증",
	"에디터 코멘트",
	"ㅇㅈ",
	"ㄴㅇㅈ",
	"같이 가는 가게",
	"등록일",
}

// Export GET /api/admin/restaurants/export
// 전체 맛집 목록을 xlsx로 내려준다.
func (h *AdminRestaurantHandler) Export(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.repo.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list restaurants for export", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("맛집 목록을 불러오는데 실패했습니다."))
		return
	}

	data, err := generateRestaurantExport(restaurants)
	if err != nil {
		h.logger.Error("failed to generate export file", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("엑셀 파일 생성에 실패했습니다."))
		return
	}

	filename := fmt.Sprintf("restaurants-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, _ = w.Write(data)
}

func generateRestaurantExport(restaurants []domain.Restaurant) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := "맛집 목록"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range restaurantExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for row, r := range restaurants {
		values := []any{
			r.Name,
			r.Address,
			r.Region.Sido,
			r.Region.Sigungu,
			r.Phone,
			r.BusinessHours,
			boolLabel(r.IsEditorCertified),
			r.EditorComment,
			r.OjCount,
			r.NojCount,
			boolLabel(r.IsGroupSpot),
			r.CreatedAt.Format("2006-01-02"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func boolLabel(b bool) string {
	if b {
		return "O"
	}
	return "X"
}
