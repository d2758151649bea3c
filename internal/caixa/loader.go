package caixa

import (
	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Carregar busca um caixa com todos os movimentos e relações usados pela
// agregação. Erros de "não encontrado" viram 404 com mensagem padrão.
func Carregar(caixaID uint) (*models.Caixa, error) {
	var cx models.Caixa
	err := database.DB.
		Preload("Operador").
		Preload("Vendas.Pagamentos.FormaPagamento").
		Preload("Vendas.Pagamentos.Bandeira").
		Preload("Deliveries.Pagamentos.FormaPagamento").
		Preload("Deliveries.Pagamentos.Bandeira").
		Preload("Deliveries.Motoboy").
		Preload("Despesas.Categoria").
		Preload("Despesas.FormaPagamento").
		Preload("Sangrias").
		Preload("Suprimentos").
		First(&cx, caixaID).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Caixa não encontrado")
	}
	return &cx, nil
}
