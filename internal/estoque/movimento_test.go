package estoque

import (
	"testing"

	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAplicarMovimentoEntrada(t *testing.T) {
	qtd, err := AplicarMovimento(10, models.MovEntrada, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, qtd)
}

func TestAplicarMovimentoSaida(t *testing.T) {
	qtd, err := AplicarMovimento(10, models.MovSaida, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, qtd)
}

func TestAplicarMovimentoSaidaInsuficiente(t *testing.T) {
	qtd, err := AplicarMovimento(3, models.MovSaida, 4)
	assert.Error(t, err)
	assert.Equal(t, 3, qtd, "estoque não muda quando o movimento é rejeitado")
}

func TestAplicarMovimentoSaidaZeraEstoque(t *testing.T) {
	qtd, err := AplicarMovimento(4, models.MovSaida, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, qtd)
}

func TestAplicarMovimentoAjusteSubstitui(t *testing.T) {
	qtd, err := AplicarMovimento(10, models.MovAjuste, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, qtd)
}

func TestAplicarMovimentoAjusteNegativo(t *testing.T) {
	_, err := AplicarMovimento(10, models.MovAjuste, -1)
	assert.Error(t, err)
}

func TestAplicarMovimentoQuantidadeInvalida(t *testing.T) {
	_, err := AplicarMovimento(10, models.MovEntrada, 0)
	assert.Error(t, err)
	_, err = AplicarMovimento(10, models.MovSaida, -2)
	assert.Error(t, err)
}

func TestAplicarMovimentoTipoInvalido(t *testing.T) {
	_, err := AplicarMovimento(10, models.TipoMovimentacao("TRANSFERENCIA"), 1)
	assert.Error(t, err)
}
