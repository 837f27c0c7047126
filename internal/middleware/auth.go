package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/wfunc/rgs-engine/internal/errors"
)

// ContextUserID 认证通过后写入gin上下文的键
const ContextUserID = "user_id"

// Claims JWT负载
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken 签发令牌
func GenerateToken(secret string, userID uint, username string, expire time.Duration) (string, error) {
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken 解析并校验令牌
func ParseToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.New(apperrors.ErrTokenInvalid, "签名算法不支持")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return nil, apperrors.Wrap(err, apperrors.ErrTokenExpired)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrTokenInvalid)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.New(apperrors.ErrTokenInvalid)
	}
	return claims, nil
}

// JWTAuth JWT认证中间件，要求"Bearer <token>"请求头
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			err := apperrors.New(apperrors.ErrAuthentication, "缺少认证令牌")
			c.AbortWithStatusJSON(err.HTTPStatus(), apperrors.NewErrorResponse(err, requestID(c)))
			return
		}
		claims, err := ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			appErr, ok := err.(*apperrors.AppError)
			if !ok {
				appErr = apperrors.Wrap(err, apperrors.ErrAuthentication)
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus(), apperrors.NewErrorResponse(appErr, requestID(c)))
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetHeader("X-Request-ID")
}

// GetUserID 从上下文取认证用户ID
func GetUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
