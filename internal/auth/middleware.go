package auth

import (
	"fmt"
	"strings"

	"github.com/DiegoBrito17/caixapro/internal/config"
	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const CtxClaimsKey = "claims"

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Header Authorization ausente")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization deve ser 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &CaixaClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de assinatura inválido")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Token inválido ou expirado")
		}

		claims, ok := token.Claims.(*CaixaClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token não pôde ser decodificado")
		}

		c.Locals(CtxClaimsKey, claims)
		return c.Next()
	}
}

// Claims recupera as claims colocadas pelo JWTMiddleware.
func Claims(c *fiber.Ctx) (*CaixaClaims, error) {
	claims, ok := c.Locals(CtxClaimsKey).(*CaixaClaims)
	if !ok || claims == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Sessão inválida")
	}
	return claims, nil
}

func RequirePerfil(perfis ...models.Perfil) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := Claims(c)
		if err != nil {
			return err
		}
		for _, p := range perfis {
			if claims.Perfil == p {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Você não tem permissão para acessar esta área")
	}
}

type Acesso string

const (
	AcessoDashboard     Acesso = "dashboard"
	AcessoConfiguracoes Acesso = "configuracoes"
	AcessoRelatorios    Acesso = "relatorios"
)

// RequireAcesso checa a capability do usuário. MASTER passa sempre.
func RequireAcesso(acesso Acesso) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := Claims(c)
		if err != nil {
			return err
		}
		if claims.Perfil == models.PerfilMaster {
			return c.Next()
		}
		permitido := false
		switch acesso {
		case AcessoDashboard:
			permitido = claims.AcessoDashboard
		case AcessoConfiguracoes:
			permitido = claims.AcessoConfiguracoes
		case AcessoRelatorios:
			permitido = claims.AcessoRelatorios
		}
		if !permitido {
			return fiber.NewError(fiber.StatusForbidden, "Acesso negado. Você não tem permissão para este recurso.")
		}
		return c.Next()
	}
}

// RequireCaixa garante que a sessão carrega um caixa; sem caixa, força novo login.
func RequireCaixa() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := Claims(c)
		if err != nil {
			return err
		}
		if claims.CaixaID == 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Caixa não encontrado. Por favor, faça login novamente.")
		}
		return c.Next()
	}
}
