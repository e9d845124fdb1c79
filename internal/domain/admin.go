package domain

import (
	"regexp"
	"time"
)

// Admin 관리자 계정 (admins 테이블)
// PasswordHash는 기본 조회에서 제외되며 로그인 검증 시에만 채워진다.
type Admin struct {
	ID           string    `json:"id" db:"admin_id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// 사용자명: 영문 소문자/숫자/언더스코어, 3~50자
var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,50}$`)

// IsValidUsername 관리자 사용자명 형식 검증
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}
