package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// 필드 길이/범위 제한 (restaurants 테이블과 동일)
const (
	MaxNameLength          = 100
	MaxDescriptionLength   = 2000
	MaxEditorCommentLength = 500
)

// Region 지역 정보 (시/도 + 시/군/구). 두 값은 항상 함께 존재한다.
type Region struct {
	Sido    string `json:"sido"`
	Sigungu string `json:"sigungu"`
}

// Restaurant 맛집 도메인 모델 (restaurants 테이블)
// 투표 카운터(ojCount/nojCount)는 생성 시 0으로 초기화되고
// 이후에는 투표 API의 원자적 증가로만 변경된다.
type Restaurant struct {
	ID               string    `json:"id" db:"restaurant_id"`
	Name             string    `json:"name" db:"name"`
	Address          string    `json:"address" db:"address"`
	Region           Region    `json:"region"`
	Description      string    `json:"description" db:"description"`
	Phone            string    `json:"phone" db:"phone"`
	BusinessHours    string    `json:"businessHours" db:"business_hours"`
	Images           []string  `json:"images" db:"images"`
	Latitude         *float64  `json:"latitude" db:"latitude"`
	Longitude        *float64  `json:"longitude" db:"longitude"`
	IsEditorCertified bool     `json:"isEditorCertified" db:"is_editor_certified"`
	EditorComment    string    `json:"editorComment" db:"editor_comment"`
	OjCount          int       `json:"ojCount" db:"oj_count"`
	NojCount         int       `json:"nojCount" db:"noj_count"`
	IsGroupSpot      bool      `json:"isGroupSpot" db:"is_group_spot"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// 투표 유형: ㅇㅈ(인정) / ㄴㅇㅈ(노인정)
const (
	VoteOj  = "oj"
	VoteNoj = "noj"
)

// IsValidVoteType 투표 유형 검증
func IsValidVoteType(voteType string) bool {
	return voteType == VoteOj || voteType == VoteNoj
}

// Normalize 문자열 필드 트리밍 및 기본값 처리
func (r *Restaurant) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.Region.Sido = strings.TrimSpace(r.Region.Sido)
	r.Region.Sigungu = strings.TrimSpace(r.Region.Sigungu)
	r.Description = strings.TrimSpace(r.Description)
	r.Phone = strings.TrimSpace(r.Phone)
	r.BusinessHours = strings.TrimSpace(r.BusinessHours)
	r.EditorComment = strings.TrimSpace(r.EditorComment)
	if r.Images == nil {
		r.Images = []string{}
	}
}

// Validate 등록/전체 수정 시 필수 필드와 제한값 검증
func (r *Restaurant) Validate() error {
	if r.Name == "" || r.Address == "" || r.Region.Sido == "" || r.Region.Sigungu == "" {
		return errors.New("필수 항목을 모두 입력해주세요.")
	}
	if utf8.RuneCountInString(r.Name) > MaxNameLength {
		return errors.New("가게 이름은 100자를 초과할 수 없습니다.")
	}
	if utf8.RuneCountInString(r.Description) > MaxDescriptionLength {
		return errors.New("설명은 2000자를 초과할 수 없습니다.")
	}
	if utf8.RuneCountInString(r.EditorComment) > MaxEditorCommentLength {
		return errors.New("에디터 코멘트는 500자를 초과할 수 없습니다.")
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		return errors.New("위도는 -90 이상 90 이하여야 합니다.")
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		return errors.New("경도는 -180 이상 180 이하여야 합니다.")
	}
	return nil
}

// ValidatePatch 부분 수정 페이로드 검증.
// 등록과 동일한 허용 필드 목록으로 제한하고 타입/제한값을 검사한 뒤
// 정규화된 필드 맵을 돌려준다. 카운터/타임스탬프/ID는 수정 대상이 아니다.
func ValidatePatch(fields map[string]any) (map[string]any, error) {
	if len(fields) == 0 {
		return nil, errors.New("수정할 내용이 없습니다.")
	}

	out := make(map[string]any, len(fields))
	for key, value := range fields {
		switch key {
		case "name":
			s, ok := value.(string)
			s = strings.TrimSpace(s)
			if !ok || s == "" {
				return nil, typeError(key)
			}
			if utf8.RuneCountInString(s) > MaxNameLength {
				return nil, errors.New("가게 이름은 100자를 초과할 수 없습니다.")
			}
			out[key] = s
		case "address":
			s, ok := value.(string)
			s = strings.TrimSpace(s)
			if !ok || s == "" {
				return nil, typeError(key)
			}
			out[key] = s
		case "description", "phone", "businessHours", "editorComment":
			s, ok := value.(string)
			if !ok {
				return nil, typeError(key)
			}
			s = strings.TrimSpace(s)
			if key == "description" && utf8.RuneCountInString(s) > MaxDescriptionLength {
				return nil, errors.New("설명은 2000자를 초과할 수 없습니다.")
			}
			if key == "editorComment" && utf8.RuneCountInString(s) > MaxEditorCommentLength {
				return nil, errors.New("에디터 코멘트는 500자를 초과할 수 없습니다.")
			}
			out[key] = s
		case "region":
			m, ok := value.(map[string]any)
			if !ok {
				return nil, typeError(key)
			}
			sido, _ := m["sido"].(string)
			sigungu, _ := m["sigungu"].(string)
			sido = strings.TrimSpace(sido)
			sigungu = strings.TrimSpace(sigungu)
			if sido == "" || sigungu == "" {
				return nil, errors.New("지역 정보는 시/도와 시/군/구를 모두 포함해야 합니다.")
			}
			out[key] = Region{Sido: sido, Sigungu: sigungu}
		case "images":
			list, ok := value.([]any)
			if !ok {
				return nil, typeError(key)
			}
			urls := make([]string, 0, len(list))
			for _, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, typeError(key)
				}
				urls = append(urls, s)
			}
			out[key] = urls
		case "latitude":
			if value == nil {
				out[key] = (*float64)(nil)
				continue
			}
			f, ok := value.(float64)
			if !ok {
				return nil, typeError(key)
			}
			if f < -90 || f > 90 {
				return nil, errors.New("위도는 -90 이상 90 이하여야 합니다.")
			}
			out[key] = &f
		case "longitude":
			if value == nil {
				out[key] = (*float64)(nil)
				continue
			}
			f, ok := value.(float64)
			if !ok {
				return nil, typeError(key)
			}
			if f < -180 || f > 180 {
				return nil, errors.New("경도는 -180 이상 180 이하여야 합니다.")
			}
			out[key] = &f
		case "isEditorCertified", "isGroupSpot":
			b, ok := value.(bool)
			if !ok {
				return nil, typeError(key)
			}
			out[key] = b
		default:
			return nil, fmt.Errorf("허용되지 않은 필드입니다: %s", key)
		}
	}
	return out, nil
}

func typeError(field string) error {
	return fmt.Errorf("필드 형식이 올바르지 않습니다: %s", field)
}
