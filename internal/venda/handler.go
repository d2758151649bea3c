package venda

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/DiegoBrito17/caixapro/internal/audit"
	"github.com/DiegoBrito17/caixapro/internal/auth"
	"github.com/DiegoBrito17/caixapro/internal/caixa"
	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"
	"github.com/DiegoBrito17/caixapro/internal/report"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ToleranciaPagamento: diferença máxima aceita entre a soma dos pagamentos e
// o total da venda/delivery.
const ToleranciaPagamento = 0.01

type PagamentoRequest struct {
	FormaPagamentoID uint    `json:"forma_pagamento_id"`
	BandeiraID       *uint   `json:"bandeira_id"`
	Valor            float64 `json:"valor"`
	Observacao       string  `json:"observacao"`
}

type CreateVendaRequest struct {
	Tipo       models.TipoVenda   `json:"tipo"` // MESA | BALCAO
	Numero     int                `json:"numero"`
	Total      float64            `json:"total"`
	EmitiuNota bool               `json:"emitiu_nota"`
	Observacao string             `json:"observacao"`
	Pagamentos []PagamentoRequest `json:"pagamentos"`
}

// ValidarPagamentos confere a soma dos pagamentos contra o total esperado.
// Pagamentos com valor <= 0 são ignorados, como no fluxo original de formulário.
func ValidarPagamentos(totalEsperado float64, pagamentos []PagamentoRequest) error {
	var totalPago float64
	for _, p := range pagamentos {
		if p.Valor > 0 {
			totalPago += p.Valor
		}
	}
	if math.Abs(totalPago-totalEsperado) > ToleranciaPagamento {
		return fmt.Errorf("o total dos pagamentos (%.2f) não corresponde ao valor esperado (%.2f)", totalPago, totalEsperado)
	}
	return nil
}

// POST /api/vendas
func CreateVendaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}

		var body CreateVendaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Tipo != models.VendaMesa && body.Tipo != models.VendaBalcao {
			return fiber.NewError(fiber.StatusBadRequest, "Tipo inválido (MESA|BALCAO)")
		}
		if body.Total <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Total deve ser maior que zero")
		}
		if err := ValidarPagamentos(body.Total, body.Pagamentos); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "O total dos pagamentos não corresponde ao valor da venda!")
		}

		venda := models.Venda{
			CaixaID:    claims.CaixaID,
			Tipo:       body.Tipo,
			Numero:     body.Numero,
			Total:      body.Total,
			EmitiuNota: body.EmitiuNota,
			Observacao: body.Observacao,
			DataHora:   time.Now().UTC(),
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&venda).Error; err != nil {
				return err
			}
			for _, p := range body.Pagamentos {
				if p.Valor <= 0 {
					continue
				}
				formaID := p.FormaPagamentoID
				pag := models.PagamentoVenda{
					VendaID:          venda.ID,
					FormaPagamentoID: &formaID,
					BandeiraID:       p.BandeiraID,
					Valor:            p.Valor,
					Observacao:       p.Observacao,
				}
				if err := tx.Create(&pag).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao registrar venda: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "venda",
			EntityID:    venda.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Venda %s registrada: R$ %.2f", venda.Tipo, venda.Total),
			After:       body,
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       venda.ID,
			"mensagem": "Venda registrada com sucesso!",
		})
	}
}

// GET /api/vendas — vendas do caixa da sessão + totais recalculados
func ListVendasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}

		cx, err := caixa.Carregar(claims.CaixaID)
		if err != nil {
			return err
		}

		var vendas []models.Venda
		if err := database.DB.
			Preload("Pagamentos.FormaPagamento").
			Preload("Pagamentos.Bandeira").
			Where("caixa_id = ?", claims.CaixaID).
			Order("data_hora desc").
			Find(&vendas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as vendas")
		}

		return c.JSON(fiber.Map{
			"vendas": vendas,
			"totais": report.CalcularTotaisCaixa(cx),
		})
	}
}

type EditarVendaRequest struct {
	Total      *float64 `json:"total"`
	Observacao *string  `json:"observacao"`
}

// PUT /api/admin/vendas/:id
// Edição administrativa: a soma dos pagamentos NÃO é reconferida aqui.
func EditarVendaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var venda models.Venda
		if err := database.DB.First(&venda, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venda não encontrada")
		}

		var body EditarVendaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		updates := map[string]interface{}{}
		if body.Total != nil {
			updates["total"] = *body.Total
		}
		if body.Observacao != nil {
			updates["observacao"] = *body.Observacao
		}
		if len(updates) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nada para atualizar")
		}

		if err := database.DB.Model(&venda).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar venda: "+err.Error())
		}

		return c.JSON(fiber.Map{"mensagem": "Venda atualizada com sucesso!"})
	}
}

// DELETE /api/admin/vendas/:id
func DeletarVendaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}
		id, _ := c.ParamsInt("id")

		var venda models.Venda
		if err := database.DB.First(&venda, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venda não encontrada")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("venda_id = ?", venda.ID).Delete(&models.PagamentoVenda{}).Error; err != nil {
				return err
			}
			return tx.Delete(&venda).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao remover venda: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "venda",
			EntityID:    venda.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Venda #%d removida (R$ %.2f)", venda.ID, venda.Total),
			Before:      venda,
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.JSON(fiber.Map{"mensagem": "Venda removida com sucesso!"})
	}
}
