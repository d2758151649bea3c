package export

import (
	"testing"
	"time"

	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caixaDeTeste() *models.Caixa {
	dataHora := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	dinheiro := &models.FormaPagamento{Nome: "Dinheiro"}

	return &models.Caixa{
		ID:       7,
		Data:     time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		Turno:    "TARDE",
		Operador: models.Usuario{Nome: "Diego"},
		Vendas: []models.Venda{
			{
				ID: 1, Tipo: models.VendaMesa, Numero: 12, Total: 50,
				EmitiuNota: true, DataHora: dataHora,
				Pagamentos: []models.PagamentoVenda{
					{Valor: 30, FormaPagamento: dinheiro},
					{Valor: 20, FormaPagamento: dinheiro},
				},
			},
		},
		Deliveries: []models.Delivery{
			{
				ID: 2, Cliente: "Ana", Total: 40, TaxaEntrega: 5,
				Motoboy: &models.Motoboy{Nome: "João"}, DataHora: dataHora,
				Pagamentos: []models.PagamentoDelivery{
					{Valor: 45, FormaPagamento: dinheiro},
				},
			},
		},
		Despesas: []models.Despesa{
			{ID: 3, Tipo: models.DespesaVariavel, Descricao: "Gelo", Valor: 12, DataHora: dataHora},
		},
		Sangrias: []models.Sangria{
			{ID: 4, Valor: 100, Motivo: "Troco do cofre", DataHora: dataHora},
		},
		Suprimentos: []models.Suprimento{
			{ID: 5, Valor: 20, Motivo: "Reforço de troco", DataHora: dataHora},
		},
	}
}

func TestLinhasMovimentosCaixaCabecalho(t *testing.T) {
	linhas := LinhasMovimentosCaixa(caixaDeTeste())

	require.NotEmpty(t, linhas)
	assert.Len(t, linhas[0], 21, "cabeçalho com as 21 colunas do log unificado")
	for i, linha := range linhas {
		assert.Len(t, linha, 21, "linha %d com número de colunas diferente do cabeçalho", i)
	}
}

func TestLinhasMovimentosCaixaUmaLinhaPorPagamento(t *testing.T) {
	linhas := LinhasMovimentosCaixa(caixaDeTeste())

	// cabeçalho + 2 pagamentos de venda + 1 de delivery + despesa + sangria + suprimento
	assert.Len(t, linhas, 7)
}

func TestLinhasMovimentosCaixaSangriaNegativa(t *testing.T) {
	linhas := LinhasMovimentosCaixa(caixaDeTeste())

	var sangria []string
	for _, linha := range linhas[1:] {
		if linha[5] == "SANGRIA" {
			sangria = linha
		}
	}
	require.NotNil(t, sangria)
	assert.Equal(t, "100.00", sangria[11], "valor bruto positivo")
	assert.Equal(t, "-100.00", sangria[12], "valor líquido negativo")
}

func TestLinhasMovimentosCaixaDeliveryBrutoComTaxa(t *testing.T) {
	linhas := LinhasMovimentosCaixa(caixaDeTeste())

	var delivery []string
	for _, linha := range linhas[1:] {
		if linha[5] == "DELIVERY" {
			delivery = linha
		}
	}
	require.NotNil(t, delivery)
	assert.Equal(t, "45.00", delivery[11], "bruto = total + taxa de entrega")
	assert.Equal(t, "Ana", delivery[8])
	assert.Equal(t, "João", delivery[16])
}

func TestEscreverCSVComecaComBOM(t *testing.T) {
	conteudo, err := escreverCSV([][]string{{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, conteudo[:3])
}
