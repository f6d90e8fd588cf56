package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 角色常量
const (
	RoleAdmin       = "admin"
	RoleDistributor = "distributor"
)

// Claims JWT载荷
type Claims struct {
	SubjectID uint64 `json:"subject_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer JWT签发器
type TokenIssuer struct {
	secret []byte
	expire time.Duration
}

// NewTokenIssuer 创建JWT签发器
func NewTokenIssuer(secret string, expireHours int) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		expire: time.Duration(expireHours) * time.Hour,
	}
}

// Issue 签发Token
func (t *TokenIssuer) Issue(subjectID uint64, role string) (string, error) {
	claims := &Claims{
		SubjectID: subjectID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.expire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate 校验Token并返回载荷
func (t *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
