package report

import (
	"testing"
	"time"

	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forma(nome string) *models.FormaPagamento {
	return &models.FormaPagamento{Nome: nome, Ativo: true}
}

func caixaVazio(saldoInicial float64) *models.Caixa {
	return &models.Caixa{
		ID:           1,
		Data:         time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		Turno:        "MANHÃ",
		SaldoInicial: saldoInicial,
		Status:       models.CaixaAberto,
	}
}

func TestTotaisCaixaVazio(t *testing.T) {
	totais := CalcularTotaisCaixa(caixaVazio(100))

	assert.Equal(t, 0.0, totais.TotalVendas)
	assert.Equal(t, 0.0, totais.Despesas)
	assert.Equal(t, 100.0, totais.SaldoAtual, "caixa sem movimento mantém o saldo inicial")
}

func TestTotaisCaixaClassificaFormas(t *testing.T) {
	cx := caixaVazio(0)
	cx.Vendas = []models.Venda{
		{
			Tipo:  models.VendaMesa,
			Total: 50,
			Pagamentos: []models.PagamentoVenda{
				{Valor: 30, FormaPagamento: forma("Dinheiro")},
				{Valor: 20, FormaPagamento: forma("Cartão de Crédito")},
			},
		},
	}

	totais := CalcularTotaisCaixa(cx)

	assert.Equal(t, 50.0, totais.VendasLoja)
	assert.Equal(t, 30.0, totais.Dinheiro)
	assert.Equal(t, 20.0, totais.Credito)
	assert.Equal(t, 0.0, totais.Debito)
	assert.Equal(t, 50.0, totais.SaldoAtual)
}

func TestTotaisCaixaFormaRemovidaNaoClassifica(t *testing.T) {
	cx := caixaVazio(0)
	cx.Vendas = []models.Venda{
		{
			Tipo:  models.VendaBalcao,
			Total: 40,
			Pagamentos: []models.PagamentoVenda{
				// Forma de pagamento excluída do cadastro: ponteiro nulo
				{Valor: 40, FormaPagamento: nil},
			},
		},
	}

	totais := CalcularTotaisCaixa(cx)

	// O valor entra no subtotal da loja, mas em nenhum balde de forma
	assert.Equal(t, 40.0, totais.VendasLoja)
	soma := totais.Dinheiro + totais.Credito + totais.Debito + totais.Pix + totais.Online
	assert.Equal(t, 0.0, soma)
}

func TestTotaisCaixaPrioridadeDeClassificacao(t *testing.T) {
	cx := caixaVazio(0)
	cx.Vendas = []models.Venda{
		{
			Tipo:  models.VendaMesa,
			Total: 10,
			Pagamentos: []models.PagamentoVenda{
				// "DINHEIRO" vence mesmo com "PIX" no nome
				{Valor: 10, FormaPagamento: forma("Dinheiro via PIX")},
			},
		},
	}

	totais := CalcularTotaisCaixa(cx)
	assert.Equal(t, 10.0, totais.Dinheiro)
	assert.Equal(t, 0.0, totais.Pix)
}

func TestTotaisCaixaDeliveryIncluiTaxa(t *testing.T) {
	cx := caixaVazio(0)
	cx.Deliveries = []models.Delivery{
		{Total: 80, TaxaEntrega: 8, EmitiuNota: true},
	}

	totais := CalcularTotaisCaixa(cx)

	assert.Equal(t, 88.0, totais.VendasDelivery)
	assert.Equal(t, 88.0, totais.NotasFiscais)
	assert.Equal(t, 88.0, totais.TotalVendas)
}

func TestTotaisCaixaSaldoIgnoraSuprimentos(t *testing.T) {
	cx := caixaVazio(200)
	cx.Vendas = []models.Venda{{Tipo: models.VendaMesa, Total: 100}}
	cx.Despesas = []models.Despesa{{Tipo: models.DespesaVariavel, Valor: 30}}
	cx.Sangrias = []models.Sangria{{Valor: 50}}
	cx.Suprimentos = []models.Suprimento{{Valor: 999}}

	totais := CalcularTotaisCaixa(cx)

	assert.Equal(t, 999.0, totais.Suprimentos, "suprimento é somado no campo próprio")
	assert.Equal(t, 200.0+100-30-50, totais.SaldoAtual, "mas fica fora da fórmula do saldo")
}

func TestTotaisDeliveryPorMotoboy(t *testing.T) {
	cx := caixaVazio(0)
	joao := &models.Motoboy{Nome: "João"}
	cx.Deliveries = []models.Delivery{
		{Total: 50, TaxaEntrega: 5, Motoboy: joao},
		{Total: 70, TaxaEntrega: 5, Motoboy: joao},
		{Total: 30, TaxaEntrega: 6}, // sem motoboy
	}

	totais := CalcularTotaisDelivery(cx)

	require.Equal(t, 3, totais.QuantidadePedidos)
	assert.Equal(t, 166.0, totais.TotalDelivery)
	assert.Equal(t, 16.0, totais.TotalTaxas)
	assert.Equal(t, 10.0, totais.Motoboys["João"])
	assert.Len(t, totais.Motoboys, 1, "delivery sem motoboy não cria balde")
}

func TestTotaisFechamentoPorTipoDeDespesa(t *testing.T) {
	cx := caixaVazio(100)
	cx.Despesas = []models.Despesa{
		{Tipo: models.DespesaFixa, Valor: 10},
		{Tipo: models.DespesaFixa, Valor: 15},
		{Tipo: models.DespesaVariavel, Valor: 20},
		{Tipo: models.DespesaSaida, Valor: 5},
	}

	totais := CalcularTotaisFechamento(cx)

	assert.Equal(t, 25.0, totais.DespesasFixas)
	assert.Equal(t, 20.0, totais.DespesasVariaveis)
	assert.Equal(t, 5.0, totais.DespesasSaidas)
	assert.Equal(t, 50.0, totais.Despesas)
	assert.Equal(t, totais.SaldoAtual, totais.SaldoFinal)
}
