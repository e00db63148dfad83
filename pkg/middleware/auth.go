package middleware

import (
	"context"
	"strings"

	"github.com/NeuralTrust/ContentGuard/pkg/common"
	"github.com/NeuralTrust/ContentGuard/pkg/handlers/http/response"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/identity"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type authMiddleware struct {
	logger       *logrus.Logger
	trustedHosts map[string]struct{}
}

// NewAuthMiddleware requires an Authorization header unless the request Host
// is one of trustedHosts. The header value is not verified here.
func NewAuthMiddleware(logger *logrus.Logger, trustedHosts []string) Middleware {
	hosts := make(map[string]struct{}, len(trustedHosts))
	for _, h := range trustedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			hosts[h] = struct{}{}
		}
	}
	return &authMiddleware{
		logger:       logger,
		trustedHosts: hosts,
	}
}

func (m *authMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authorization := strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization))
		if authorization == "" {
			if _, ok := m.trustedHosts[strings.ToLower(ctx.Hostname())]; !ok {
				m.logger.WithFields(logrus.Fields{
					"host": ctx.Hostname(),
					"path": ctx.Path(),
				}).Debug("missing authorization header")
				return response.Unauthorized(ctx)
			}
			return ctx.Next()
		}

		if subject := identity.SubjectFromAuthorization(authorization); subject != "" {
			ctx.Locals(common.SubjectContextKey, subject)
			ctx.SetUserContext(context.WithValue(ctx.UserContext(), common.SubjectContextKey, subject))
		}
		return ctx.Next()
	}
}
