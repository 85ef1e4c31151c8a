package security

import (
	"GameLibraryAPI/config"
	"GameLibraryAPI/internal/model"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
)

type Claims struct {
	UserUUID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTService выпускает и проверяет подписанные токены. Access и refresh
// токены подписываются независимыми секретами: компрометация одного
// класса ключей не позволяет подделать другой. После создания сервис
// не изменяется и безопасен для конкурентного использования
type JWTService struct {
	accessSecret    []byte
	refreshSecret   []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	issuer          string
}

func NewJWTService(cfg config.JWTConfig) (*JWTService, error) {
	accessTTL := defaultAccessTokenTTL
	if cfg.AccessTokenTTL != "" {
		parsed, err := time.ParseDuration(cfg.AccessTokenTTL)
		if err != nil {
			return nil, fmt.Errorf("ошибка парсинга access_token_ttl: %w", err)
		}
		accessTTL = parsed
	}

	refreshTTL := defaultRefreshTokenTTL
	if cfg.RefreshTokenTTL != "" {
		parsed, err := time.ParseDuration(cfg.RefreshTokenTTL)
		if err != nil {
			return nil, fmt.Errorf("ошибка парсинга refresh_token_ttl: %w", err)
		}
		refreshTTL = parsed
	}

	return &JWTService{
		accessSecret:    []byte(cfg.AccessSecret),
		refreshSecret:   []byte(cfg.RefreshSecret),
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
		issuer:          cfg.Issuer,
	}, nil
}

// GenerateAccessToken подписывает токен access-секретом, срок 15 минут.
// Побочных эффектов нет
func (service *JWTService) GenerateAccessToken(userUUID string) (string, error) {
	return service.sign(userUUID, service.accessSecret, service.accessTokenTTL)
}

// GenerateRefreshToken подписывает токен refresh-секретом, срок 7 дней.
// Побочных эффектов нет
func (service *JWTService) GenerateRefreshToken(userUUID string) (string, error) {
	return service.sign(userUUID, service.refreshSecret, service.refreshTokenTTL)
}

func (service *JWTService) GenerateTokenPair(userUUID string) (*model.TokensPair, error) {
	accessToken, err := service.GenerateAccessToken(userUUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации access токена: %w", err)
	}

	refreshToken, err := service.GenerateRefreshToken(userUUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации refresh токена: %w", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (service *JWTService) ValidateAccessToken(jwtTokenStr string) (*Claims, error) {
	return validate(jwtTokenStr, service.accessSecret)
}

func (service *JWTService) ValidateRefreshToken(jwtTokenStr string) (*Claims, error) {
	return validate(jwtTokenStr, service.refreshSecret)
}

func (service *JWTService) sign(userUUID string, secret []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		UserUUID: userUUID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUUID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    service.issuer,
			// уникальный jti гарантирует, что ротация в пределах одной
			// секунды все равно выпустит новый токен
			ID: uuid.New().String(),
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := jwtToken.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return signed, nil
}

func validate(jwtTokenStr string, secret []byte) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		// просроченный токен с верной подписью отличаем от битого:
		// jwt.ErrTokenExpired выставляется только после проверки подписи
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if jwtToken.Valid == false {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
