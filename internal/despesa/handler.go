package despesa

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

func tipoValido(t models.TipoDespesa) bool {
	switch t {
	case models.DespesaFixa, models.DespesaVariavel, models.DespesaSaida:
		return true
	}
	return false
}

type CreateDespesaRequest struct {
	Tipo             models.TipoDespesa `json:"tipo"` // FIXA | VARIAVEL | SAIDA
	CategoriaID      *uint              `json:"categoria_id"`
	Descricao        string             `json:"descricao"`
	Valor            float64            `json:"valor"`
	FormaPagamentoID *uint              `json:"forma_pagamento_id"`
	DataVencimento   string             `json:"data_vencimento"` // YYYY-MM-DD, opcional
	Status           string             `json:"status"`
	Observacao       string             `json:"observacao"`
}

// POST /api/despesas
func CreateDespesaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}

		var body CreateDespesaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if !tipoValido(body.Tipo) {
			return fiber.NewError(fiber.StatusBadRequest, "Tipo inválido (FIXA|VARIAVEL|SAIDA)")
		}
		if strings.TrimSpace(body.Descricao) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Descrição é obrigatória")
		}
		if body.Valor <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Valor deve ser maior que zero")
		}

		if body.CategoriaID != nil {
			var cat models.CategoriaDespesa
			if err := database.DB.First(&cat, *body.CategoriaID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Categoria não encontrada")
			}
		}

		var vencimento *time.Time
		if body.DataVencimento != "" {
			t, err := time.Parse("2006-01-02", body.DataVencimento)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Data de vencimento inválida (use YYYY-MM-DD)")
			}
			vencimento = &t
		}

		status := body.Status
		if status == "" {
			status = "PAGO"
		}

		d := models.Despesa{
			CaixaID:          claims.CaixaID,
			Tipo:             body.Tipo,
			CategoriaID:      body.CategoriaID,
			Descricao:        strings.TrimSpace(body.Descricao),
			Valor:            body.Valor,
			FormaPagamentoID: body.FormaPagamentoID,
			DataVencimento:   vencimento,
			Status:           status,
			Observacao:       body.Observacao,
			DataHora:         time.Now().UTC(),
		}

		if err := database.DB.Create(&d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao registrar despesa: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "despesa",
			EntityID:    d.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Despesa %s registrada: %s R$ %.2f", d.Tipo, d.Descricao, d.Valor),
			After:       body,
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       d.ID,
			"mensagem": "Despesa registrada com sucesso!",
		})
	}
}

// GET /api/despesas — despesas do caixa da sessão, com total por tipo
func ListDespesasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}

		var despesas []models.Despesa
		if err := database.DB.
			Preload("Categoria").
			Preload("FormaPagamento").
			Where("caixa_id = ?", claims.CaixaID).
			Order("data_hora desc").
			Find(&despesas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as despesas")
		}

		var total, fixas, variaveis, saidas float64
		for _, d := range despesas {
			total += d.Valor
			switch d.Tipo {
			case models.DespesaFixa:
				fixas += d.Valor
			case models.DespesaVariavel:
				variaveis += d.Valor
			case models.DespesaSaida:
				saidas += d.Valor
			}
		}

		return c.JSON(fiber.Map{
			"despesas": despesas,
			"totais": fiber.Map{
				"total":     total,
				"fixas":     fixas,
				"variaveis": variaveis,
				"saidas":    saidas,
			},
		})
	}
}

type EditarDespesaRequest struct {
	Tipo        *models.TipoDespesa `json:"tipo"`
	CategoriaID *uint               `json:"categoria_id"`
	Descricao   *string             `json:"descricao"`
	Valor       *float64            `json:"valor"`
	Status      *string             `json:"status"`
	Observacao  *string             `json:"observacao"`
}

// PUT /api/admin/despesas/:id
func EditarDespesaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var d models.Despesa
		if err := database.DB.First(&d, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Despesa não encontrada")
		}

		var body EditarDespesaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		updates := map[string]interface{}{}
		if body.Tipo != nil {
			if !tipoValido(*body.Tipo) {
				return fiber.NewError(fiber.StatusBadRequest, "Tipo inválido (FIXA|VARIAVEL|SAIDA)")
			}
			updates["tipo"] = *body.Tipo
		}
		if body.CategoriaID != nil {
			updates["categoria_id"] = *body.CategoriaID
		}
		if body.Descricao != nil {
			updates["descricao"] = *body.Descricao
		}
		if body.Valor != nil {
			updates["valor"] = *body.Valor
		}
		if body.Status != nil {
			updates["status"] = *body.Status
		}
		if body.Observacao != nil {
			updates["observacao"] = *body.Observacao
		}
		if len(updates) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nada para atualizar")
		}

		if err := database.DB.Model(&d).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar despesa: "+err.Error())
		}

		return c.JSON(fiber.Map{"mensagem": "Despesa atualizada com sucesso!"})
	}
}

// DELETE /api/admin/despesas/:id
func DeletarDespesaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}
		id, _ := c.ParamsInt("id")

		var d models.Despesa
		if err := database.DB.First(&d, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Despesa não encontrada")
		}

		if err := database.DB.Delete(&d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao remover despesa: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "despesa",
			EntityID:    d.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Despesa #%d removida (%s, R$ %.2f)", d.ID, d.Descricao, d.Valor),
			Before:      d,
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.JSON(fiber.Map{"mensagem": "Despesa removida com sucesso!"})
	}
}
