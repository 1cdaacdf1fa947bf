package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskup/internal/pkg/config"
	"taskup/pkg/constants"
	pkgErrors "taskup/pkg/errors"
)

// UserClaims 用户Claims
type UserClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Type      string `json:"type"` // access or refresh
	jwt.RegisteredClaims
}

// GenerateAccessToken 生成访问Token
func GenerateAccessToken(userID, email, firstName, lastName, role string) (string, error) {
	cfg := config.GlobalConfig.Auth.JWT
	return generate(userID, email, firstName, lastName, role, constants.JWTTypeAccess,
		time.Duration(cfg.AccessTokenExpire)*time.Second)
}

// GenerateRefreshToken 生成刷新Token
func GenerateRefreshToken(userID, email, firstName, lastName, role string) (string, error) {
	cfg := config.GlobalConfig.Auth.JWT
	return generate(userID, email, firstName, lastName, role, constants.JWTTypeRefresh,
		time.Duration(cfg.RefreshTokenExpire)*time.Second)
}

func generate(userID, email, firstName, lastName, role, tokenType string, expire time.Duration) (string, error) {
	cfg := config.GlobalConfig.Auth.JWT

	claims := UserClaims{
		UserID:    userID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		Type:      tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseToken 解析Token
func ParseToken(tokenString string) (*UserClaims, error) {
	cfg := config.GlobalConfig.Auth.JWT

	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeUnauthorized, "解析Token失败", err)
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, pkgErrors.ErrInvalidToken
}

// ValidateToken 验证Token有效性
func ValidateToken(tokenString string) (*UserClaims, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	// 检查是否过期
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, pkgErrors.ErrTokenExpired
	}

	return claims, nil
}
