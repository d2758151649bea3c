package caixa

import (
	"fmt"
	"log"
	"time"

	"github.com/DiegoBrito17/caixapro/internal/audit"
	"github.com/DiegoBrito17/caixapro/internal/auth"
	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"
	"github.com/DiegoBrito17/caixapro/internal/report"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CaixaResponse struct {
	ID             uint               `json:"id"`
	Data           string             `json:"data"`
	Turno          string             `json:"turno"`
	Operador       string             `json:"operador"`
	SaldoInicial   float64            `json:"saldo_inicial"`
	SaldoFinal     float64            `json:"saldo_final"`
	Status         models.StatusCaixa `json:"status"`
	HoraAbertura   string             `json:"hora_abertura"`
	HoraFechamento string             `json:"hora_fechamento,omitempty"`
}

func toResponse(cx *models.Caixa) CaixaResponse {
	resp := CaixaResponse{
		ID:           cx.ID,
		Data:         cx.Data.Format("2006-01-02"),
		Turno:        cx.Turno,
		Operador:     cx.Operador.Nome,
		SaldoInicial: cx.SaldoInicial,
		SaldoFinal:   cx.SaldoFinal,
		Status:       cx.Status,
		HoraAbertura: cx.HoraAbertura.Format("15:04:05"),
	}
	if cx.HoraFechamento != nil {
		resp.HoraFechamento = cx.HoraFechamento.Format("15:04:05")
	}
	return resp
}

// GET /api/admin/caixas?status=aberto&page=1
func ListCaixasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		if page < 1 {
			page = 1
		}
		const perPage = 20

		dbq := database.DB.Model(&models.Caixa{}).Preload("Operador").
			Order("data desc, hora_abertura desc")

		if status := c.Query("status"); status != "" && status != "all" {
			dbq = dbq.Where("status = ?", normalizeStatus(status))
		}

		var caixas []models.Caixa
		if err := dbq.Offset((page - 1) * perPage).Limit(perPage).Find(&caixas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os caixas")
		}

		resp := make([]CaixaResponse, 0, len(caixas))
		for i := range caixas {
			resp = append(resp, toResponse(&caixas[i]))
		}
		return c.JSON(fiber.Map{"page": page, "caixas": resp})
	}
}

func normalizeStatus(s string) models.StatusCaixa {
	if s == "fechado" || s == "FECHADO" {
		return models.CaixaFechado
	}
	return models.CaixaAberto
}

// GET /api/admin/caixas/:id — detalhes com totais de fechamento
func GetCaixaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cx, err := Carregar(uintParam(c))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"caixa":  toResponse(cx),
			"totais": report.CalcularTotaisFechamento(cx),
		})
	}
}

func uintParam(c *fiber.Ctx) uint {
	id, _ := c.ParamsInt("id")
	if id < 0 {
		return 0
	}
	return uint(id)
}

// GET /api/fechamento/preview — prévia dos totais antes de confirmar
func FechamentoPreviewHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}
		cx, err := Carregar(claims.CaixaID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"caixa":  toResponse(cx),
			"totais": report.CalcularTotaisFechamento(cx),
		})
	}
}

// POST /api/fechamento/confirmar
func ConfirmarFechamentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}
		cx, err := Carregar(claims.CaixaID)
		if err != nil {
			return err
		}

		totais := report.CalcularTotaisFechamento(cx)
		now := time.Now().UTC()

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Model(&models.Caixa{}).Where("id = ?", cx.ID).Updates(map[string]interface{}{
				"saldo_final":     totais.SaldoFinal,
				"status":          models.CaixaFechado,
				"hora_fechamento": now,
			}).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao fechar o caixa: "+err.Error())
		}

		return c.JSON(fiber.Map{
			"mensagem":    "Caixa fechado com sucesso!",
			"saldo_final": totais.SaldoFinal,
		})
	}
}

// PUT /api/admin/caixas/:id/reabrir
func ReabrirCaixaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cx, err := Carregar(uintParam(c))
		if err != nil {
			return err
		}
		if cx.Status == models.CaixaAberto {
			return fiber.NewError(fiber.StatusBadRequest, "Este caixa já está aberto!")
		}

		if err := database.DB.Model(&models.Caixa{}).Where("id = ?", cx.ID).Updates(map[string]interface{}{
			"status":          models.CaixaAberto,
			"hora_fechamento": nil,
		}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao reabrir o caixa")
		}

		return c.JSON(fiber.Map{"mensagem": fmt.Sprintf("Caixa #%d reaberto com sucesso!", cx.ID)})
	}
}

// PUT /api/admin/caixas/:id/fechar
func FecharForcadoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cx, err := Carregar(uintParam(c))
		if err != nil {
			return err
		}
		if cx.Status == models.CaixaFechado {
			return fiber.NewError(fiber.StatusBadRequest, "Este caixa já está fechado!")
		}

		totais := report.CalcularTotaisFechamento(cx)
		now := time.Now().UTC()

		if err := database.DB.Model(&models.Caixa{}).Where("id = ?", cx.ID).Updates(map[string]interface{}{
			"saldo_final":     totais.SaldoFinal,
			"status":          models.CaixaFechado,
			"hora_fechamento": now,
		}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao fechar o caixa")
		}

		return c.JSON(fiber.Map{
			"mensagem":    fmt.Sprintf("Caixa #%d fechado pelo administrador. Operador: %s", cx.ID, cx.Operador.Nome),
			"saldo_final": totais.SaldoFinal,
		})
	}
}

type EditarCaixaRequest struct {
	SaldoInicial *float64 `json:"saldo_inicial"`
	SaldoFinal   *float64 `json:"saldo_final"`
}

// PUT /api/admin/caixas/:id
func EditarCaixaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cx, err := Carregar(uintParam(c))
		if err != nil {
			return err
		}

		var body EditarCaixaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		updates := map[string]interface{}{}
		if body.SaldoInicial != nil {
			updates["saldo_inicial"] = *body.SaldoInicial
		}
		if body.SaldoFinal != nil {
			updates["saldo_final"] = *body.SaldoFinal
		}
		if len(updates) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nada para atualizar")
		}

		if err := database.DB.Model(&models.Caixa{}).Where("id = ?", cx.ID).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar o caixa")
		}

		return c.JSON(fiber.Map{"mensagem": "Caixa atualizado com sucesso!"})
	}
}

// DELETE /api/admin/caixas/:id
// Remove o caixa e TODOS os registros filhos, na ordem que respeita as FKs.
func ExcluirCaixaCompletoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}
		cx, err := Carregar(uintParam(c))
		if err != nil {
			return err
		}

		info := fmt.Sprintf("Caixa #%d - %s - %s", cx.ID, cx.Data.Format("02/01/2006"), cx.Turno)

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			for _, venda := range cx.Vendas {
				if err := tx.Where("venda_id = ?", venda.ID).Delete(&models.PagamentoVenda{}).Error; err != nil {
					return err
				}
			}
			for _, del := range cx.Deliveries {
				if err := tx.Where("delivery_id = ?", del.ID).Delete(&models.PagamentoDelivery{}).Error; err != nil {
					return err
				}
			}
			for _, m := range []interface{}{
				&models.Venda{}, &models.Delivery{}, &models.Despesa{},
				&models.Sangria{}, &models.Suprimento{},
			} {
				if err := tx.Where("caixa_id = ?", cx.ID).Delete(m).Error; err != nil {
					return err
				}
			}
			return tx.Delete(&models.Caixa{}, cx.ID).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao excluir o caixa: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "caixa",
			EntityID:    cx.ID,
			Action:      models.AuditActionDelete,
			Description: "Caixa excluído com todos os registros: " + info,
			Before:      toResponse(cx),
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.JSON(fiber.Map{"mensagem": info + " excluído permanentemente com todos os registros!"})
	}
}

// GET /api/relatorios/diario?data=2026-08-29
// Consolida todos os caixas de um dia (todos os turnos).
func RelatorioDiarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dataStr := c.Query("data")
		if dataStr == "" {
			dataStr = time.Now().Format("2006-01-02")
		}
		data, err := time.Parse("2006-01-02", dataStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "data inválida, use 'YYYY-MM-DD'")
		}

		var ids []uint
		if err := database.DB.Model(&models.Caixa{}).Where("data = ?", data).Pluck("id", &ids).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao consultar os caixas do dia")
		}

		type caixaDia struct {
			Caixa  CaixaResponse      `json:"caixa"`
			Totais report.TotaisCaixa `json:"totais"`
		}

		relatorio := fiber.Map{"data": dataStr}
		var totalVendas, totalDespesas, totalSangrias float64
		var abertos, fechados int
		caixasDia := make([]caixaDia, 0, len(ids))

		for _, id := range ids {
			cx, err := Carregar(id)
			if err != nil {
				continue
			}
			totais := report.CalcularTotaisCaixa(cx)
			totalVendas += totais.TotalVendas
			totalDespesas += totais.Despesas
			totalSangrias += totais.Sangrias
			if cx.Status == models.CaixaAberto {
				abertos++
			} else {
				fechados++
			}
			caixasDia = append(caixasDia, caixaDia{Caixa: toResponse(cx), Totais: totais})
		}

		relatorio["total_caixas"] = len(caixasDia)
		relatorio["caixas_abertos"] = abertos
		relatorio["caixas_fechados"] = fechados
		relatorio["total_vendas"] = totalVendas
		relatorio["total_despesas"] = totalDespesas
		relatorio["total_sangrias"] = totalSangrias
		relatorio["saldo_dia"] = totalVendas - totalDespesas - totalSangrias
		relatorio["caixas"] = caixasDia

		return c.JSON(relatorio)
	}
}
