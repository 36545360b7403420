package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/archonitDev/reformly-server/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	authClient *auth.Client
	users      service.UserService
	log        *zap.Logger
}

func NewAuthMiddleware(ctx context.Context, projectID string, users service.UserService, log *zap.Logger) (*AuthMiddleware, error) {
	if projectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is not set")
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &AuthMiddleware{authClient: client, users: users, log: log}, nil
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		tokenStr := strings.TrimPrefix(authz, "Bearer ")
		token, err := m.authClient.VerifyIDToken(c.Request().Context(), tokenStr)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}

		// Provision the profile row on first contact so engagement on
		// this user's content can move points right away.
		if m.users != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			email, _ := token.Claims["email"].(string)
			name, _ := token.Claims["name"].(string)
			first, last := splitName(name)
			if err := m.users.EnsureUser(ctx, token.UID, email, first, last); err != nil {
				m.log.Warn("user provisioning failed", zap.String("uid", token.UID), zap.Error(err))
			}
			cancel()
		}

		c.Set("uid", token.UID)
		return next(c)
	}
}

func (m *AuthMiddleware) Client() *auth.Client {
	return m.authClient
}

func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
