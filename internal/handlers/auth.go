package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/comprehension-service/internal/config"
	"github.com/SAP-F-2025/comprehension-service/internal/services"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
)

// Admin identifies the user behind a verified token.
type Admin struct {
	Name    string
	IsAdmin bool
}

// Authenticator verifies bearer tokens for admin routes.
type Authenticator interface {
	Authenticate(token string) (*Admin, error)
}

// CasdoorAuthenticator checks tokens issued by a Casdoor instance.
type CasdoorAuthenticator struct {
	client *casdoorsdk.Client
}

// NewCasdoorAuthenticator returns nil when no endpoint is configured; admin
// routes then answer 503.
func NewCasdoorAuthenticator(cfg config.CasdoorConfig) Authenticator {
	if cfg.Endpoint == "" {
		return nil
	}
	return &CasdoorAuthenticator{
		client: casdoorsdk.NewClient(
			cfg.Endpoint,
			cfg.ClientID,
			cfg.ClientSecret,
			cfg.Certificate,
			cfg.OrganizationName,
			cfg.ApplicationName,
		),
	}
}

func (a *CasdoorAuthenticator) Authenticate(token string) (*Admin, error) {
	claims, err := a.client.ParseJwtToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrUnauthorized, err)
	}
	return &Admin{Name: claims.User.Name, IsAdmin: claims.User.IsAdmin}, nil
}

// AdminMiddleware admits requests carrying a bearer token of an admin user.
func AdminMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticator == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{
				Message: "Data download is not configured",
			})
			return
		}

		token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized access",
			})
			return
		}

		admin, err := authenticator.Authenticate(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unauthorized access",
				Details: err.Error(),
			})
			return
		}
		if !admin.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Forbidden - insufficient permissions",
			})
			return
		}

		c.Set("user_id", admin.Name)
		c.Next()
	}
}
