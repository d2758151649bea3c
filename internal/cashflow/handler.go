package cashflow

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/DiegoBrito17/caixapro/internal/audit"
	"github.com/DiegoBrito17/caixapro/internal/auth"
	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/gofiber/fiber/v2"
)

type MovimentoRequest struct {
	Valor      float64 `json:"valor"`
	Motivo     string  `json:"motivo"`
	Observacao string  `json:"observacao"`
}

func (r *MovimentoRequest) validar() error {
	if r.Valor <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Valor deve ser maior que zero")
	}
	if strings.TrimSpace(r.Motivo) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Motivo é obrigatório")
	}
	return nil
}

// POST /api/sangrias
func CreateSangriaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}

		var body MovimentoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if err := body.validar(); err != nil {
			return err
		}

		s := models.Sangria{
			CaixaID:    claims.CaixaID,
			Valor:      body.Valor,
			Motivo:     strings.TrimSpace(body.Motivo),
			Observacao: body.Observacao,
			DataHora:   time.Now().UTC(),
		}
		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao registrar sangria: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "sangria",
			EntityID:    s.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Sangria registrada: R$ %.2f (%s)", s.Valor, s.Motivo),
			After:       body,
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       s.ID,
			"mensagem": "Sangria registrada com sucesso!",
		})
	}
}

// GET /api/sangrias
func ListSangriasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}

		var sangrias []models.Sangria
		if err := database.DB.
			Where("caixa_id = ?", claims.CaixaID).
			Order("data_hora desc").
			Find(&sangrias).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as sangrias")
		}

		var total float64
		for _, s := range sangrias {
			total += s.Valor
		}
		return c.JSON(fiber.Map{"sangrias": sangrias, "total": total})
	}
}

// POST /api/suprimentos
func CreateSuprimentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}

		var body MovimentoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if err := body.validar(); err != nil {
			return err
		}

		s := models.Suprimento{
			CaixaID:    claims.CaixaID,
			Valor:      body.Valor,
			Motivo:     strings.TrimSpace(body.Motivo),
			Observacao: body.Observacao,
			DataHora:   time.Now().UTC(),
		}
		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao registrar suprimento: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "suprimento",
			EntityID:    s.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Suprimento registrado: R$ %.2f (%s)", s.Valor, s.Motivo),
			After:       body,
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       s.ID,
			"mensagem": "Suprimento registrado com sucesso!",
		})
	}
}

// GET /api/suprimentos
func ListSuprimentosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}

		var suprimentos []models.Suprimento
		if err := database.DB.
			Where("caixa_id = ?", claims.CaixaID).
			Order("data_hora desc").
			Find(&suprimentos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os suprimentos")
		}

		var total float64
		for _, s := range suprimentos {
			total += s.Valor
		}
		return c.JSON(fiber.Map{"suprimentos": suprimentos, "total": total})
	}
}

// PUT /api/admin/sangrias/:id
func EditarSangriaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var s models.Sangria
		if err := database.DB.First(&s, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sangria não encontrada")
		}

		var body MovimentoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.Valor > 0 {
			s.Valor = body.Valor
		}
		if strings.TrimSpace(body.Motivo) != "" {
			s.Motivo = strings.TrimSpace(body.Motivo)
		}
		if body.Observacao != "" {
			s.Observacao = body.Observacao
		}

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar sangria: "+err.Error())
		}
		return c.JSON(fiber.Map{"mensagem": "Sangria atualizada com sucesso!"})
	}
}

// DELETE /api/admin/sangrias/:id
func DeletarSangriaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}
		id, _ := c.ParamsInt("id")

		var s models.Sangria
		if err := database.DB.First(&s, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sangria não encontrada")
		}
		if err := database.DB.Delete(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao remover sangria: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "sangria",
			EntityID:    s.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Sangria #%d removida (R$ %.2f)", s.ID, s.Valor),
			Before:      s,
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.JSON(fiber.Map{"mensagem": "Sangria removida com sucesso!"})
	}
}

// PUT /api/admin/suprimentos/:id
func EditarSuprimentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var s models.Suprimento
		if err := database.DB.First(&s, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Suprimento não encontrado")
		}

		var body MovimentoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.Valor > 0 {
			s.Valor = body.Valor
		}
		if strings.TrimSpace(body.Motivo) != "" {
			s.Motivo = strings.TrimSpace(body.Motivo)
		}
		if body.Observacao != "" {
			s.Observacao = body.Observacao
		}

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar suprimento: "+err.Error())
		}
		return c.JSON(fiber.Map{"mensagem": "Suprimento atualizado com sucesso!"})
	}
}

// DELETE /api/admin/suprimentos/:id
func DeletarSuprimentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}
		id, _ := c.ParamsInt("id")

		var s models.Suprimento
		if err := database.DB.First(&s, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Suprimento não encontrado")
		}
		if err := database.DB.Delete(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao remover suprimento: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "suprimento",
			EntityID:    s.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Suprimento #%d removido (R$ %.2f)", s.ID, s.Valor),
			Before:      s,
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.JSON(fiber.Map{"mensagem": "Suprimento removido com sucesso!"})
	}
}
