package delivery

import (
	"fmt"
	"log"
	"time"

	"github.com/DiegoBrito17/caixapro/internal/audit"
	"github.com/DiegoBrito17/caixapro/internal/auth"
	"github.com/DiegoBrito17/caixapro/internal/caixa"
	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"
	"github.com/DiegoBrito17/caixapro/internal/report"
	"github.com/DiegoBrito17/caixapro/internal/venda"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateDeliveryRequest struct {
	Cliente     string                   `json:"cliente"`
	Total       float64                  `json:"total"`
	TaxaEntrega float64                  `json:"taxa_entrega"`
	MotoboyID   *uint                    `json:"motoboy_id"`
	EmitiuNota  bool                     `json:"emitiu_nota"`
	Observacao  string                   `json:"observacao"`
	Pagamentos  []venda.PagamentoRequest `json:"pagamentos"`
}

// POST /api/deliveries
// Os pagamentos devem cobrir total + taxa de entrega, pois o cliente paga a
// taxa junto com o pedido.
func CreateDeliveryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}

		var body CreateDeliveryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Total <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Total deve ser maior que zero")
		}
		if body.TaxaEntrega < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Taxa de entrega não pode ser negativa")
		}
		if err := venda.ValidarPagamentos(body.Total+body.TaxaEntrega, body.Pagamentos); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "O total dos pagamentos não corresponde ao valor do delivery!")
		}

		d := models.Delivery{
			CaixaID:     claims.CaixaID,
			Cliente:     body.Cliente,
			Total:       body.Total,
			TaxaEntrega: body.TaxaEntrega,
			MotoboyID:   body.MotoboyID,
			EmitiuNota:  body.EmitiuNota,
			Observacao:  body.Observacao,
			DataHora:    time.Now().UTC(),
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&d).Error; err != nil {
				return err
			}
			for _, p := range body.Pagamentos {
				if p.Valor <= 0 {
					continue
				}
				formaID := p.FormaPagamentoID
				pag := models.PagamentoDelivery{
					DeliveryID:       d.ID,
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
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao registrar delivery: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "delivery",
			EntityID:    d.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Delivery registrado: R$ %.2f + taxa R$ %.2f", d.Total, d.TaxaEntrega),
			After:       body,
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       d.ID,
			"mensagem": "Delivery registrado com sucesso!",
		})
	}
}

// GET /api/deliveries — deliveries do caixa da sessão + totais por motoboy
func ListDeliveriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}

		cx, err := caixa.Carregar(claims.CaixaID)
		if err != nil {
			return err
		}

		var deliveries []models.Delivery
		if err := database.DB.
			Preload("Pagamentos.FormaPagamento").
			Preload("Pagamentos.Bandeira").
			Preload("Motoboy").
			Where("caixa_id = ?", claims.CaixaID).
			Order("data_hora desc").
			Find(&deliveries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os deliveries")
		}

		return c.JSON(fiber.Map{
			"deliveries": deliveries,
			"totais":     report.CalcularTotaisDelivery(cx),
		})
	}
}

type EditarDeliveryRequest struct {
	Cliente     *string  `json:"cliente"`
	Total       *float64 `json:"total"`
	TaxaEntrega *float64 `json:"taxa_entrega"`
	MotoboyID   *uint    `json:"motoboy_id"`
	Observacao  *string  `json:"observacao"`
}

// PUT /api/admin/deliveries/:id
func EditarDeliveryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var d models.Delivery
		if err := database.DB.First(&d, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Delivery não encontrado")
		}

		var body EditarDeliveryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		updates := map[string]interface{}{}
		if body.Cliente != nil {
			updates["cliente"] = *body.Cliente
		}
		if body.Total != nil {
			updates["total"] = *body.Total
		}
		if body.TaxaEntrega != nil {
			updates["taxa_entrega"] = *body.TaxaEntrega
		}
		if body.MotoboyID != nil {
			updates["motoboy_id"] = *body.MotoboyID
		}
		if body.Observacao != nil {
			updates["observacao"] = *body.Observacao
		}
		if len(updates) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nada para atualizar")
		}

		if err := database.DB.Model(&d).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar delivery: "+err.Error())
		}

		return c.JSON(fiber.Map{"mensagem": "Delivery atualizado com sucesso!"})
	}
}

// DELETE /api/admin/deliveries/:id
func DeletarDeliveryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}
		id, _ := c.ParamsInt("id")

		var d models.Delivery
		if err := database.DB.First(&d, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Delivery não encontrado")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("delivery_id = ?", d.ID).Delete(&models.PagamentoDelivery{}).Error; err != nil {
				return err
			}
			return tx.Delete(&d).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao remover delivery: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "delivery",
			EntityID:    d.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Delivery #%d removido (R$ %.2f)", d.ID, d.Total),
			Before:      d,
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.JSON(fiber.Map{"mensagem": "Delivery removido com sucesso!"})
	}
}
