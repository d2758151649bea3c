package estoque

import (
	"fmt"

	"github.com/DiegoBrito17/caixapro/internal/models"
)

// AplicarMovimento calcula a nova quantidade de um produto após um movimento.
// ENTRADA soma, SAIDA subtrai (rejeitando estoque insuficiente) e AJUSTE
// substitui a quantidade pelo valor informado.
func AplicarMovimento(atual int, tipo models.TipoMovimentacao, quantidade int) (int, error) {
	switch tipo {
	case models.MovEntrada:
		if quantidade <= 0 {
			return atual, fmt.Errorf("quantidade de entrada deve ser maior que zero")
		}
		return atual + quantidade, nil
	case models.MovSaida:
		if quantidade <= 0 {
			return atual, fmt.Errorf("quantidade de saída deve ser maior que zero")
		}
		if quantidade > atual {
			return atual, fmt.Errorf("estoque insuficiente: disponível %d, solicitado %d", atual, quantidade)
		}
		return atual - quantidade, nil
	case models.MovAjuste:
		if quantidade < 0 {
			return atual, fmt.Errorf("ajuste não pode deixar o estoque negativo")
		}
		return quantidade, nil
	}
	return atual, fmt.Errorf("tipo de movimentação inválido: %s", tipo)
}
