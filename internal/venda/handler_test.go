package venda

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidarPagamentosExato(t *testing.T) {
	pagamentos := []PagamentoRequest{
		{FormaPagamentoID: 1, Valor: 30},
		{FormaPagamentoID: 2, Valor: 20},
	}
	assert.NoError(t, ValidarPagamentos(50, pagamentos))
}

func TestValidarPagamentosDentroDaTolerancia(t *testing.T) {
	pagamentos := []PagamentoRequest{{FormaPagamentoID: 1, Valor: 49.991}}
	assert.NoError(t, ValidarPagamentos(50, pagamentos), "diferença de 0.009 é aceita")
}

func TestValidarPagamentosForaDaTolerancia(t *testing.T) {
	pagamentos := []PagamentoRequest{{FormaPagamentoID: 1, Valor: 49.989}}
	assert.Error(t, ValidarPagamentos(50, pagamentos), "diferença de 0.011 é rejeitada")
}

func TestValidarPagamentosIgnoraValoresNaoPositivos(t *testing.T) {
	pagamentos := []PagamentoRequest{
		{FormaPagamentoID: 1, Valor: 50},
		{FormaPagamentoID: 2, Valor: 0},
		{FormaPagamentoID: 3, Valor: -10},
	}
	assert.NoError(t, ValidarPagamentos(50, pagamentos))
}

func TestValidarPagamentosSemPagamentos(t *testing.T) {
	assert.Error(t, ValidarPagamentos(50, nil))
	assert.NoError(t, ValidarPagamentos(0, nil))
}
