package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hoon0510/loneatkr/internal/domain"
	"github.com/hoon0510/loneatkr/internal/repository"
)

// ErrInvalidCredentials 로그인 실패 (어느 필드가 틀렸는지 노출하지 않는다)
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenTTL 관리자 토큰 유효 기간
const TokenTTL = 7 * 24 * time.Hour

// BcryptCost 비밀번호 해싱 강도
const BcryptCost = 12

// AuthService 관리자 인증: 로그인 검증과 토큰 발급/검증
type AuthService struct {
	admins repository.AdminsRepo
	secret []byte
	logger *zap.Logger
}

func NewAuthService(admins repository.AdminsRepo, secret []byte, logger *zap.Logger) *AuthService {
	return &AuthService{admins: admins, secret: secret, logger: logger}
}

type adminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Login 사용자명/비밀번호 검증 후 토큰 발급
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(admin.ID, admin.Username, TokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("admin logged in", zap.String("username", admin.Username))
	return token, admin, nil
}

// IssueToken HS256 서명 토큰 발급 (관리자 ID + 사용자명 포함)
func (s *AuthService) IssueToken(adminID, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := adminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken 서명/만료 검증 후 (관리자 ID, 사용자명) 반환
func (s *AuthService) VerifyToken(tokenString string) (string, string, error) {
	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return "", "", errors.New("invalid token")
	}
	return claims.Subject, claims.Username, nil
}

// HashPassword bcrypt 해싱 (부트스트랩 스크립트에서 사용)
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
