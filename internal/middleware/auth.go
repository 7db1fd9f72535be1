// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"inkstream/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session"

// LoginPath is where unauthenticated requests to protected routes are sent.
const LoginPath = "/auth/login"

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// tokenFromRequest extracts the session token from the session cookie or,
// failing that, from a Bearer Authorization header.
func tokenFromRequest(c *fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookie); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// ParseUserID validates a session token and returns the user ID from its
// subject claim.
func ParseUserID(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	// User ID lives in the "sub" claim (subject claim per RFC 7519)
	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, errors.New("invalid token subject")
	}

	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, errors.New("invalid user ID in token")
	}
	return uint(userID), nil
}

// AuthRequired enforces authentication for protected routes. An
// unauthenticated request is redirected to the login page with a next
// parameter pointing back at the original URL.
func AuthRequired(c *fiber.Ctx) error {
	token := tokenFromRequest(c)
	if token == "" {
		return redirectToLogin(c)
	}

	userID, err := ParseUserID(token)
	if err != nil {
		return redirectToLogin(c)
	}

	c.Locals("userID", userID)
	return c.Next()
}

// OptionalAuth resolves the acting user when a valid session is present
// but never blocks the request. Public pages use it to show follow state.
func OptionalAuth(c *fiber.Ctx) error {
	if token := tokenFromRequest(c); token != "" {
		if userID, err := ParseUserID(token); err == nil {
			c.Locals("userID", userID)
		}
	}
	return c.Next()
}

func redirectToLogin(c *fiber.Ctx) error {
	next := url.QueryEscape(c.OriginalURL())
	return c.Redirect(LoginPath+"?next="+next, fiber.StatusFound)
}
