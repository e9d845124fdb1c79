package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxFileSize 업로드 파일 크기 상한 (5MiB)
const MaxFileSize = 5 << 20

// 업로드 하위 디렉토리 및 공개 URL prefix
const restaurantsSubdir = "restaurants"

// 허용 이미지 타입 (선언된 Content-Type 기준)
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var (
	ErrInvalidType = errors.New("허용되지 않는 파일 형식입니다. (jpg, png, webp만 허용)")
	ErrTooLarge    = errors.New("파일 크기가 5MB를 초과합니다.")
)

// Store 이미지 파일 저장소. baseDir 아래 restaurants/ 하위에 저장하고
// /uploads/restaurants/<파일명> 형태의 공개 URL을 반환한다.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Validate 선언된 Content-Type과 크기 검사
func Validate(fh *multipart.FileHeader) error {
	if !allowedTypes[fh.Header.Get("Content-Type")] {
		return ErrInvalidType
	}
	if fh.Size > MaxFileSize {
		return ErrTooLarge
	}
	return nil
}

// UniqueFilename 타임스탬프 + 랜덤 접미사로 충돌 없는 파일명 생성 (확장자 유지)
func UniqueFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}

// Save 파일 한 개 저장 후 공개 URL 반환
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.baseDir, restaurantsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	filename := UniqueFilename(fh.Filename)
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/uploads/" + restaurantsSubdir + "/" + filename, nil
}

// SaveAll 여러 파일 저장. 저장 단계 실패 시 첫 에러로 중단한다.
func (s *Store) SaveAll(fhs []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		url, err := s.Save(fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
