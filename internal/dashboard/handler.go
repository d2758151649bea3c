package dashboard

import (
	"time"

	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"
	"github.com/DiegoBrito17/caixapro/internal/report"

	"github.com/gofiber/fiber/v2"
)

// intervaloPeriodo resolve o filtro de período do dashboard para um par de
// datas inclusivas. Períodos aceitos: hoje (default), semana, mes, custom.
func intervaloPeriodo(periodo, inicioStr, fimStr string, agora time.Time) (time.Time, time.Time, error) {
	hoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, time.UTC)

	switch periodo {
	case "", "hoje":
		return hoje, hoje, nil
	case "semana":
		return hoje.AddDate(0, 0, -6), hoje, nil
	case "mes":
		return hoje.AddDate(0, -1, 0), hoje, nil
	case "custom":
		inicio, err := time.Parse("2006-01-02", inicioStr)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Data inicial inválida (use YYYY-MM-DD)")
		}
		fim, err := time.Parse("2006-01-02", fimStr)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Data final inválida (use YYYY-MM-DD)")
		}
		if fim.Before(inicio) {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Data final anterior à inicial")
		}
		return inicio, fim, nil
	}
	return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Período inválido (hoje|semana|mes|custom)")
}

// filtrarTurno devolve só os caixas cujo rótulo de turno cai no mesmo bucket
// do filtro. O turno é gravado como texto livre ("Manhã", "manha"...), então
// a comparação normaliza os dois lados em vez de confiar numa igualdade SQL.
func filtrarTurno(caixas []models.Caixa, turno string) []models.Caixa {
	alvo := report.NormalizarTurno(turno)
	filtrados := make([]models.Caixa, 0, len(caixas))
	for _, caixa := range caixas {
		if report.NormalizarTurno(caixa.Turno) == alvo {
			filtrados = append(filtrados, caixa)
		}
	}
	return filtrados
}

// GET /api/dashboard?periodo=semana&turno=NOITE
// GET /api/dashboard?periodo=custom&inicio=2026-08-01&fim=2026-08-28
func DashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		inicio, fim, err := intervaloPeriodo(
			c.Query("periodo"), c.Query("inicio"), c.Query("fim"), time.Now().UTC())
		if err != nil {
			return err
		}

		var caixas []models.Caixa
		if err := database.DB.
			Preload("Vendas.Pagamentos.FormaPagamento").
			Preload("Vendas.Pagamentos.Bandeira").
			Preload("Deliveries.Pagamentos.FormaPagamento").
			Preload("Deliveries.Motoboy").
			Preload("Despesas.Categoria").
			Preload("Sangrias").
			Preload("Suprimentos").
			Where("data BETWEEN ? AND ?", inicio, fim).
			Order("data asc").Find(&caixas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar o dashboard")
		}

		if turno := c.Query("turno"); turno != "" {
			caixas = filtrarTurno(caixas, turno)
		}

		return c.JSON(fiber.Map{
			"periodo": fiber.Map{
				"inicio": inicio.Format("2006-01-02"),
				"fim":    fim.Format("2006-01-02"),
			},
			"total_caixas": len(caixas),
			"metricas":     report.CalcularMetricasDashboard(caixas),
			"avancadas":    report.CalcularMetricasAvancadas(caixas),
		})
	}
}
