package auth

import (
	"errors"
	"time"

	"github.com/DiegoBrito17/caixapro/internal/config"
	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"
	"github.com/DiegoBrito17/caixapro/internal/report"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Nome  string `json:"nome"`
	Senha string `json:"senha"`
	// "novo" abre/entra no caixa do slot data+turno; "acessar" entra num caixa
	// existente pelo id (retomada de sessão).
	Acao         string  `json:"acao"`
	CaixaID      uint    `json:"caixa_id"`
	Data         string  `json:"data"`  // YYYY-MM-DD
	Turno        string  `json:"turno"` // rótulo livre (Manhã/Tarde/Noite...)
	SaldoInicial float64 `json:"saldo_inicial"`
}

type LoginResponse struct {
	Token   string    `json:"token"`
	Usuario fiber.Map `json:"usuario"`
	Caixa   fiber.Map `json:"caixa"`
	Aviso   string    `json:"aviso,omitempty"`
}

// POST /api/auth/login
// Autentica e resolve o caixa da sessão conforme o perfil:
//   - admin/master: entra no caixa ABERTO do slot, reabre silenciosamente o
//     FECHADO, ou cria um novo;
//   - operador: entra no ABERTO, entra no FECHADO em modo visualização, ou
//     cria um novo — nunca reabre implicitamente.
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		var usuario models.Usuario
		if err := database.DB.Where("nome = ? AND ativo = ?", body.Nome, true).First(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Credenciais inválidas")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(body.Senha)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Credenciais inválidas")
		}

		// MASTER sempre recupera todas as permissões no login (auto-correção
		// de flags antigas no banco).
		if usuario.Perfil == models.PerfilMaster {
			if !usuario.AcessoDashboard || !usuario.AcessoConfiguracoes || !usuario.AcessoRelatorios {
				usuario.AcessoDashboard = true
				usuario.AcessoConfiguracoes = true
				usuario.AcessoRelatorios = true
				database.DB.Save(&usuario)
			}
		}

		var caixa *models.Caixa
		var aviso string
		var err error

		if body.Acao == "acessar" {
			caixa, err = acessarCaixa(body.CaixaID)
		} else {
			caixa, aviso, err = abrirCaixa(&usuario, body)
		}
		if err != nil {
			return err
		}

		token, err := GenerateToken(cfg.JWTSecret, &usuario, caixa)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o token")
		}

		return c.JSON(LoginResponse{
			Token: token,
			Usuario: fiber.Map{
				"id":     usuario.ID,
				"nome":   usuario.Nome,
				"perfil": usuario.Perfil,
			},
			Caixa: fiber.Map{
				"id":            caixa.ID,
				"data":          caixa.Data.Format("2006-01-02"),
				"turno":         caixa.Turno,
				"saldo_inicial": caixa.SaldoInicial,
				"status":        caixa.Status,
				"hora_abertura": caixa.HoraAbertura.Format("15:04:05"),
			},
			Aviso: aviso,
		})
	}
}

func acessarCaixa(caixaID uint) (*models.Caixa, error) {
	var caixa models.Caixa
	if err := database.DB.First(&caixa, caixaID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Caixa não encontrado")
	}
	return &caixa, nil
}

func abrirCaixa(usuario *models.Usuario, body LoginRequest) (*models.Caixa, string, error) {
	if body.Turno == "" {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "turno é obrigatório")
	}
	data := time.Now()
	if body.Data != "" {
		d, err := time.Parse("2006-01-02", body.Data)
		if err != nil {
			return nil, "", fiber.NewError(fiber.StatusBadRequest, "Data inválida, use 'YYYY-MM-DD'")
		}
		data = d
	}
	data = time.Date(data.Year(), data.Month(), data.Day(), 0, 0, 0, 0, time.UTC)

	var existente models.Caixa
	err := database.DB.Where("data = ? AND turno = ?", data, body.Turno).First(&existente).Error

	switch {
	case err == nil && existente.Status == models.CaixaAberto:
		return &existente, "", nil

	case err == nil && existente.Status == models.CaixaFechado:
		if usuario.EhAdmin() {
			// Reabertura silenciosa pelo admin
			existente.Status = models.CaixaAberto
			existente.HoraFechamento = nil
			if err := database.DB.Save(&existente).Error; err != nil {
				return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Erro ao reabrir o caixa")
			}
			return &existente, "Caixa FECHADO reaberto pelo admin", nil
		}
		// Operador acessa em modo visualização, sem reabrir
		return &existente, "Acessando caixa FECHADO (modo visualização)", nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		novo := models.Caixa{
			Data:         data,
			Turno:        body.Turno,
			OperadorID:   usuario.ID,
			SaldoInicial: body.SaldoInicial,
			Status:       models.CaixaAberto,
			HoraAbertura: time.Now().UTC(),
		}
		criErr := database.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&novo).Error
		})
		if criErr != nil {
			// O índice único (data, turno) pode ter sido vencido por outro
			// operador: entra no caixa que venceu a corrida.
			var vencedor models.Caixa
			if err := database.DB.Where("data = ? AND turno = ?", data, body.Turno).First(&vencedor).Error; err == nil {
				return &vencedor, "", nil
			}
			return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Erro ao abrir o caixa")
		}
		return &novo, "", nil

	default:
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Erro ao consultar o caixa")
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := Claims(c)
		if err != nil {
			return err
		}

		resp := fiber.Map{
			"user_id":   claims.UserID,
			"user_nome": claims.UserNome,
			"perfil":    claims.Perfil,
			"caixa_id":  claims.CaixaID,
			"turno":     claims.Turno,
			"data":      claims.Data,
		}

		// Totais atuais do caixa da sessão, recalculados do banco
		var caixa models.Caixa
		if err := database.DB.
			Preload("Vendas.Pagamentos.FormaPagamento").
			Preload("Deliveries.Pagamentos.FormaPagamento").
			Preload("Despesas").
			Preload("Sangrias").
			Preload("Suprimentos").
			First(&caixa, claims.CaixaID).Error; err == nil {
			resp["totais"] = report.CalcularTotaisCaixa(&caixa)
			resp["caixa_status"] = caixa.Status
		}

		return c.JSON(resp)
	}
}

// POST /api/auth/register-master
// Bootstrap de emergência: só funciona enquanto não existir um MASTER.
func RegisterMasterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Nome  string `json:"nome"`
			Senha string `json:"senha"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.Nome == "" || body.Senha == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome e senha são obrigatórios")
		}

		var count int64
		database.DB.Model(&models.Usuario{}).Where("perfil = ?", models.PerfilMaster).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "Já existe um ADMIN MASTER")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Senha), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o hash da senha")
		}

		usuario := models.Usuario{
			Nome:                body.Nome,
			SenhaHash:           string(hash),
			Perfil:              models.PerfilMaster,
			AcessoDashboard:     true,
			AcessoConfiguracoes: true,
			AcessoRelatorios:    true,
			Ativo:               true,
		}
		if err := database.DB.Create(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o usuário")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":     usuario.ID,
			"nome":   usuario.Nome,
			"perfil": usuario.Perfil,
		})
	}
}
