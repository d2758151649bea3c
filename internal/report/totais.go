package report

import (
	"strings"

	"github.com/DiegoBrito17/caixapro/internal/models"
)

// TotaisCaixa agrega todos os movimentos de um caixa já carregado (vendas com
// pagamentos, deliveries, despesas, sangrias, suprimentos). Nada é lido do
// banco aqui; é sempre recalculado a cada visualização.
type TotaisCaixa struct {
	VendasLoja     float64 `json:"vendas_loja"`
	VendasDelivery float64 `json:"vendas_delivery"`
	TotalVendas    float64 `json:"total_vendas"`
	Dinheiro       float64 `json:"dinheiro"`
	Credito        float64 `json:"credito"`
	Debito         float64 `json:"debito"`
	Pix            float64 `json:"pix"`
	Online         float64 `json:"online"`
	NotasFiscais   float64 `json:"notas_fiscais"`
	Despesas       float64 `json:"despesas"`
	Sangrias       float64 `json:"sangrias"`
	Suprimentos    float64 `json:"suprimentos"`
	SaldoAtual     float64 `json:"saldo_atual"`
}

// classificarForma soma o valor no balde da forma de pagamento. A classificação
// é por substring no nome cadastrado, em ordem de prioridade; a primeira que
// casar ganha. Forma que não casa com nenhuma palavra-chave fica fora de todos
// os baldes (mas o valor continua no subtotal da venda/delivery).
func (t *TotaisCaixa) classificarForma(forma *models.FormaPagamento, valor float64) {
	if forma == nil {
		// Forma de pagamento removida do cadastro
		return
	}
	nome := strings.ToUpper(forma.Nome)
	switch {
	case strings.Contains(nome, "DINHEIRO"):
		t.Dinheiro += valor
	case strings.Contains(nome, "CRÉDITO"), strings.Contains(nome, "CREDITO"):
		t.Credito += valor
	case strings.Contains(nome, "DÉBITO"), strings.Contains(nome, "DEBITO"):
		t.Debito += valor
	case strings.Contains(nome, "PIX"):
		t.Pix += valor
	case strings.Contains(nome, "ONLINE"):
		t.Online += valor
	}
}

func CalcularTotaisCaixa(caixa *models.Caixa) TotaisCaixa {
	t := TotaisCaixa{}

	for _, venda := range caixa.Vendas {
		t.VendasLoja += venda.Total
		if venda.EmitiuNota {
			t.NotasFiscais += venda.Total
		}
		for _, pag := range venda.Pagamentos {
			t.classificarForma(pag.FormaPagamento, pag.Valor)
		}
	}

	for _, del := range caixa.Deliveries {
		bruto := del.Total + del.TaxaEntrega
		t.VendasDelivery += bruto
		if del.EmitiuNota {
			t.NotasFiscais += bruto
		}
		for _, pag := range del.Pagamentos {
			t.classificarForma(pag.FormaPagamento, pag.Valor)
		}
	}

	for _, despesa := range caixa.Despesas {
		t.Despesas += despesa.Valor
	}
	for _, sangria := range caixa.Sangrias {
		t.Sangrias += sangria.Valor
	}
	for _, sup := range caixa.Suprimentos {
		t.Suprimentos += sup.Valor
	}

	t.TotalVendas = t.VendasLoja + t.VendasDelivery
	// Suprimentos ficam fora da fórmula do saldo, reproduzindo o comportamento
	// do sistema em produção (tratamento contábil pendente de definição).
	t.SaldoAtual = caixa.SaldoInicial + t.TotalVendas - t.Despesas - t.Sangrias

	return t
}

// TotaisDelivery agrega só os deliveries do caixa.
type TotaisDelivery struct {
	TotalDelivery     float64            `json:"total_delivery"`
	TotalTaxas        float64            `json:"total_taxas"`
	QuantidadePedidos int                `json:"quantidade_pedidos"`
	Motoboys          map[string]float64 `json:"motoboys"`
}

func CalcularTotaisDelivery(caixa *models.Caixa) TotaisDelivery {
	t := TotaisDelivery{Motoboys: make(map[string]float64)}

	for _, del := range caixa.Deliveries {
		t.TotalDelivery += del.Total + del.TaxaEntrega
		t.TotalTaxas += del.TaxaEntrega
		t.QuantidadePedidos++

		// Delivery sem motoboy conta nos totais gerais, mas não em nenhum balde.
		if del.Motoboy != nil {
			t.Motoboys[del.Motoboy.Nome] += del.TaxaEntrega
		}
	}

	return t
}

// TotaisFechamento embute os totais do caixa e abre as despesas por tipo.
// SaldoFinal é o valor definitivo persistido no fechamento.
type TotaisFechamento struct {
	TotaisCaixa
	DespesasFixas     float64 `json:"despesas_fixas"`
	DespesasVariaveis float64 `json:"despesas_variaveis"`
	DespesasSaidas    float64 `json:"despesas_saidas"`
	SaldoFinal        float64 `json:"saldo_final"`
}

func CalcularTotaisFechamento(caixa *models.Caixa) TotaisFechamento {
	t := TotaisFechamento{TotaisCaixa: CalcularTotaisCaixa(caixa)}

	for _, despesa := range caixa.Despesas {
		switch despesa.Tipo {
		case models.DespesaFixa:
			t.DespesasFixas += despesa.Valor
		case models.DespesaVariavel:
			t.DespesasVariaveis += despesa.Valor
		case models.DespesaSaida:
			t.DespesasSaidas += despesa.Valor
		}
	}
	t.SaldoFinal = t.SaldoAtual

	return t
}
