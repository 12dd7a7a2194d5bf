// 단일 관리자 계정 인증 비즈니스 로직 정의
//
// 채널 설정 같은 변경 API를 보호하는 용도다. 로그인 성공 시 JWT access
// 토큰을 발급하고, 미들웨어가 Bearer 헤더로 검증한다.
//
// 환경변수로 관리자 계정을 공급한다 (ADMIN_LOGIN_ID, ADMIN_PASSWORD_HASH).

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/codepulse/backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrMisconfigured = errors.New("auth config invalid")
)

type authClaims struct {
	LoginID string `json:"loginId"`
	jwt.RegisteredClaims
}

// AuthService 구조체 정의
type AuthService struct {
	jwtSecret    []byte
	accessTTL    time.Duration
	adminLoginID string
	adminHash    string
}

func NewAuthService(cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	if cfg.AdminHash == "" {
		return nil, fmt.Errorf("%w: ADMIN_PASSWORD_HASH is required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	return &AuthService{
		jwtSecret:    []byte(cfg.JWTSecret),
		accessTTL:    accessTTL,
		adminLoginID: cfg.AdminLoginID,
		adminHash:    cfg.AdminHash,
	}, nil
}

// ExpiresIn - access 토큰 수명 (초)
func (s *AuthService) ExpiresIn() int {
	return int(s.accessTTL.Seconds())
}

// Login - 자격 증명 확인 후 access 토큰 발급
func (s *AuthService) Login(loginID, password string) (string, error) {
	if loginID != s.adminLoginID {
		return "", ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	now := time.Now()
	claims := authClaims{
		LoginID: loginID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   loginID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken - Bearer 토큰 검증 후 로그인 ID 반환
func (s *AuthService) ParseAccessToken(tokenString string) (string, error) {
	var claims authClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrUnauthorized
	}
	return claims.LoginID, nil
}
