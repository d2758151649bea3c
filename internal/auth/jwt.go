package auth

import (
	"time"

	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// CaixaClaims é a versão JWT da antiga sessão: além do usuário, carrega um
// snapshot desnormalizado do caixa aberto para evitar uma consulta por página.
// O snapshot é confiado sem revalidação na maioria das rotas.
type CaixaClaims struct {
	UserID              uint          `json:"user_id"`
	UserNome            string        `json:"user_nome"`
	Perfil              models.Perfil `json:"perfil"`
	AcessoDashboard     bool          `json:"acesso_dashboard"`
	AcessoConfiguracoes bool          `json:"acesso_configuracoes"`
	AcessoRelatorios    bool          `json:"acesso_relatorios"`

	CaixaID      uint    `json:"caixa_id"`
	Turno        string  `json:"turno"`
	Data         string  `json:"data"` // YYYY-MM-DD
	SaldoInicial float64 `json:"saldo_inicial"`
	HoraAbertura string  `json:"hora_abertura"` // HH:MM:SS

	jwt.RegisteredClaims
}

func GenerateToken(secret string, usuario *models.Usuario, caixa *models.Caixa) (string, error) {
	claims := &CaixaClaims{
		UserID:              usuario.ID,
		UserNome:            usuario.Nome,
		Perfil:              usuario.Perfil,
		AcessoDashboard:     usuario.AcessoDashboard,
		AcessoConfiguracoes: usuario.AcessoConfiguracoes,
		AcessoRelatorios:    usuario.AcessoRelatorios,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	if caixa != nil {
		claims.CaixaID = caixa.ID
		claims.Turno = caixa.Turno
		claims.Data = caixa.Data.Format("2006-01-02")
		claims.SaldoInicial = caixa.SaldoInicial
		claims.HoraAbertura = caixa.HoraAbertura.Format("15:04:05")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
