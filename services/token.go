package services

import (
	"errors"
	"strconv"
	"time"

	"ordergrab/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type Claims struct {
	UserID        uint   `json:"user_id"`
	Role          string `json:"role"`
	SessionID     string `json:"sid"`
	GrabbedOrders []uint `json:"grabbed_orders"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for user bound to session. The token expires with the session.
func IssueToken(secret string, user *models.User, session *models.Session) (string, error) {
	grabbed := []uint(user.GrabbedOrders)
	if grabbed == nil {
		grabbed = []uint{}
	}

	claims := Claims{
		UserID:        user.ID,
		Role:          user.Role,
		SessionID:     session.SID,
		GrabbedOrders: grabbed,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken.WithDetail(err.Error())
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// OpenSession stores a new session row and returns it with a signed token.
func OpenSession(db *gorm.DB, secret string, ttl time.Duration, user *models.User, userAgent, ip string) (*models.Session, string, error) {
	session := models.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(ttl),
		UserAgent: truncate(userAgent, 255),
		IP:        ip,
	}
	if err := db.Create(&session).Error; err != nil {
		return nil, "", err
	}

	token, err := IssueToken(secret, user, &session)
	if err != nil {
		return nil, "", err
	}
	return &session, token, nil
}

// ResolveSession validates the token and returns the live session and its user.
func ResolveSession(db *gorm.DB, secret, tokenString string, now time.Time) (*models.Session, *models.User, error) {
	claims, err := ParseToken(secret, tokenString)
	if err != nil {
		return nil, nil, err
	}

	var session models.Session
	if err := db.Where("sid = ? AND user_id = ?", claims.SessionID, claims.UserID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionExpired
		}
		return nil, nil, err
	}
	if session.Expired(now) {
		return nil, nil, ErrSessionExpired
	}

	var user models.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionExpired
		}
		return nil, nil, err
	}
	return &session, &user, nil
}

func CloseSession(db *gorm.DB, sid string) error {
	return db.Unscoped().Where("sid = ?", sid).Delete(&models.Session{}).Error
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
