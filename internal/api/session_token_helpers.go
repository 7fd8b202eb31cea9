package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/parentsphere/internal/security"
)

var (
	errMissingSessionCookie = errors.New("missing onboarding session cookie")
	errInvalidSessionToken  = errors.New("invalid onboarding session token")
)

func (handler *Handler) setSessionCookie(c *fiber.Ctx, sessionID string) error {
	ttl := handler.sessionTokenTTL()
	token, err := handler.buildSessionToken(sessionID, ttl, time.Now())
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(ttl),
	})
	return nil
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func (handler *Handler) sessionTokenTTL() time.Duration {
	if handler.sessionTTL > 0 && handler.sessionTTL < defaultSessionTokenTTL {
		return handler.sessionTTL
	}
	return defaultSessionTokenTTL
}

func (handler *Handler) buildSessionToken(sessionID string, ttl time.Duration, now time.Time) (string, error) {
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) parseSessionToken(rawToken string) (string, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return "", errMissingSessionCookie
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", errInvalidSessionToken
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return "", errInvalidSessionToken
	}
	if !security.ValidSessionID(claims.SessionID) {
		return "", errInvalidSessionToken
	}
	return claims.SessionID, nil
}
