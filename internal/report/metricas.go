package report

import (
	"math"
	"strings"

	"github.com/DiegoBrito17/caixapro/internal/models"
)

// MetricasDashboard: agregado de um conjunto de caixas selecionado por
// período. Recalculado por inteiro a cada request, sem cache.
type MetricasDashboard struct {
	TotalReceitas     float64                      `json:"total_receitas"`
	TotalDespesas     float64                      `json:"total_despesas"`
	SaldoLiquido      float64                      `json:"saldo_liquido"`
	TicketMedio       float64                      `json:"ticket_medio"`
	TotalTransacoes   int                          `json:"total_transacoes"`
	FormasPagamento   map[string]float64           `json:"formas_pagamento"`
	TiposVenda        map[models.TipoVenda]float64 `json:"tipos_venda"`
	DespesasCategoria map[string]float64           `json:"despesas_categoria"`
	VendasCount       int                          `json:"vendas_count"`
	DeliveryCount     int                          `json:"delivery_count"`
}

// TipoVendaDelivery é o terceiro canal no split de receita por tipo.
const TipoVendaDelivery models.TipoVenda = "DELIVERY"

func CalcularMetricasDashboard(caixas []models.Caixa) MetricasDashboard {
	m := MetricasDashboard{
		FormasPagamento: make(map[string]float64),
		TiposVenda: map[models.TipoVenda]float64{
			models.VendaMesa:   0,
			models.VendaBalcao: 0,
			TipoVendaDelivery:  0,
		},
		DespesasCategoria: make(map[string]float64),
	}

	for i := range caixas {
		caixa := &caixas[i]
		totais := CalcularTotaisCaixa(caixa)
		m.TotalReceitas += totais.TotalVendas
		m.TotalDespesas += totais.Despesas

		m.VendasCount += len(caixa.Vendas)
		m.DeliveryCount += len(caixa.Deliveries)

		for _, venda := range caixa.Vendas {
			for _, pag := range venda.Pagamentos {
				if pag.FormaPagamento == nil {
					continue
				}
				m.FormasPagamento[pag.FormaPagamento.Nome] += pag.Valor
			}
			m.TiposVenda[venda.Tipo] += venda.Total
		}

		for _, del := range caixa.Deliveries {
			for _, pag := range del.Pagamentos {
				if pag.FormaPagamento == nil {
					continue
				}
				m.FormasPagamento[pag.FormaPagamento.Nome] += pag.Valor
			}
			m.TiposVenda[TipoVendaDelivery] += del.Total + del.TaxaEntrega
		}

		for _, despesa := range caixa.Despesas {
			if despesa.Categoria != nil {
				m.DespesasCategoria[despesa.Categoria.Nome] += despesa.Valor
			}
		}
	}

	m.TotalTransacoes = m.VendasCount + m.DeliveryCount
	m.SaldoLiquido = m.TotalReceitas - m.TotalDespesas
	if m.TotalTransacoes > 0 {
		m.TicketMedio = math.Round(m.TotalReceitas/float64(m.TotalTransacoes)*100) / 100
	}

	return m
}

// Turnos canônicos para normalização dos rótulos livres.
const (
	TurnoManha = "MANHÃ"
	TurnoTarde = "TARDE"
	TurnoNoite = "NOITE"
)

// NormalizarTurno mapeia o rótulo livre do turno para um dos três buckets.
// Rótulos não reconhecidos (e vazios) caem no turno da manhã.
func NormalizarTurno(turno string) string {
	t := strings.ToUpper(turno)
	switch {
	case strings.Contains(t, "MANH"):
		return TurnoManha
	case strings.Contains(t, "TARDE"):
		return TurnoTarde
	case strings.Contains(t, "NOITE"):
		return TurnoNoite
	default:
		return TurnoManha
	}
}

// PiorDiaSentinela: valor inicial da busca pelo pior dia. Um dia que empate
// exatamente com a sentinela nunca é eleito (comparação estrita).
const PiorDiaSentinela = 99999999.0

type DiaValor struct {
	Dia   string  `json:"dia"`
	Valor float64 `json:"valor"`
}

type MotoboyTaxas struct {
	Total      float64 `json:"total"`
	Quantidade int     `json:"quantidade"`
}

type MetricasAvancadas struct {
	VendasPorTurno      map[string]float64             `json:"vendas_por_turno"`
	TransacoesPorTurno  map[string]int                 `json:"transacoes_por_turno"`
	MotoboysTaxas       map[string]*MotoboyTaxas       `json:"motoboys_taxas"`
	DespesasPorTipo     map[models.TipoDespesa]float64 `json:"despesas_por_tipo"`
	ContasAssinadas     float64                        `json:"contas_assinadas"`
	TotalSangrias       float64                        `json:"total_sangrias"`
	MargemLucro         float64                        `json:"margem_lucro"`
	CustoOperacional    float64                        `json:"custo_operacional"`
	Lucratividade       float64                        `json:"lucratividade"`
	VendasPorDia        map[string]float64             `json:"vendas_por_dia"`
	DespesasPorDia      map[string]float64             `json:"despesas_por_dia"`
	MelhorDia           DiaValor                       `json:"melhor_dia"`
	PiorDia             DiaValor                       `json:"pior_dia"`
	TotalNotasFiscais   float64                        `json:"total_notas_fiscais"`
	PercentualNotas     float64                        `json:"percentual_notas"`
	TicketMedioMesa     float64                        `json:"ticket_medio_mesa"`
	TicketMedioDelivery float64                        `json:"ticket_medio_delivery"`
	VendasMesaCount     int                            `json:"vendas_mesa_count"`
	VendasBalcaoCount   int                            `json:"vendas_balcao_count"`
	VendasDeliveryCount int                            `json:"vendas_delivery_count"`
}

func ehContaAssinada(forma *models.FormaPagamento) bool {
	if forma == nil {
		return false
	}
	nome := strings.ToUpper(forma.Nome)
	return strings.Contains(nome, "ASSINADA") || strings.Contains(nome, "CONTA")
}

func CalcularMetricasAvancadas(caixas []models.Caixa) MetricasAvancadas {
	m := MetricasAvancadas{
		VendasPorTurno:     map[string]float64{TurnoManha: 0, TurnoTarde: 0, TurnoNoite: 0},
		TransacoesPorTurno: map[string]int{TurnoManha: 0, TurnoTarde: 0, TurnoNoite: 0},
		MotoboysTaxas:      make(map[string]*MotoboyTaxas),
		DespesasPorTipo: map[models.TipoDespesa]float64{
			models.DespesaFixa:     0,
			models.DespesaVariavel: 0,
			models.DespesaSaida:    0,
		},
		VendasPorDia:   make(map[string]float64),
		DespesasPorDia: make(map[string]float64),
		MelhorDia:      DiaValor{Dia: "-", Valor: 0},
		PiorDia:        DiaValor{Dia: "-", Valor: PiorDiaSentinela},
	}

	var totalMesa, totalDelivery float64
	var countMesa, countDelivery int

	for i := range caixas {
		caixa := &caixas[i]
		turno := NormalizarTurno(caixa.Turno)
		dia := caixa.Data.Format("02/01")

		// Inicializa o dia mesmo sem movimento
		if _, ok := m.VendasPorDia[dia]; !ok {
			m.VendasPorDia[dia] = 0
		}
		if _, ok := m.DespesasPorDia[dia]; !ok {
			m.DespesasPorDia[dia] = 0
		}

		for _, venda := range caixa.Vendas {
			m.VendasPorTurno[turno] += venda.Total
			m.TransacoesPorTurno[turno]++
			m.VendasPorDia[dia] += venda.Total

			if venda.EmitiuNota {
				m.TotalNotasFiscais += venda.Total
			}

			switch venda.Tipo {
			case models.VendaMesa:
				totalMesa += venda.Total
				countMesa++
				m.VendasMesaCount++
			case models.VendaBalcao:
				m.VendasBalcaoCount++
			}

			for _, pag := range venda.Pagamentos {
				if ehContaAssinada(pag.FormaPagamento) {
					m.ContasAssinadas += pag.Valor
				}
			}
		}

		for _, del := range caixa.Deliveries {
			bruto := del.Total + del.TaxaEntrega
			m.VendasPorTurno[turno] += bruto
			m.TransacoesPorTurno[turno]++
			m.VendasPorDia[dia] += bruto
			m.VendasDeliveryCount++

			if del.EmitiuNota {
				m.TotalNotasFiscais += bruto
			}

			totalDelivery += bruto
			countDelivery++

			if del.Motoboy != nil {
				mt, ok := m.MotoboysTaxas[del.Motoboy.Nome]
				if !ok {
					mt = &MotoboyTaxas{}
					m.MotoboysTaxas[del.Motoboy.Nome] = mt
				}
				mt.Total += del.TaxaEntrega
				mt.Quantidade++
			}

			for _, pag := range del.Pagamentos {
				if ehContaAssinada(pag.FormaPagamento) {
					m.ContasAssinadas += pag.Valor
				}
			}
		}

		for _, despesa := range caixa.Despesas {
			if _, ok := m.DespesasPorTipo[despesa.Tipo]; ok {
				m.DespesasPorTipo[despesa.Tipo] += despesa.Valor
			}
			m.DespesasPorDia[dia] += despesa.Valor
		}

		for _, sangria := range caixa.Sangrias {
			m.TotalSangrias += sangria.Valor
		}
	}

	// Melhor e pior dia: comparação estrita, o primeiro encontrado vence.
	for dia, valor := range m.VendasPorDia {
		if valor > m.MelhorDia.Valor {
			m.MelhorDia = DiaValor{Dia: dia, Valor: valor}
		}
		if valor < m.PiorDia.Valor {
			m.PiorDia = DiaValor{Dia: dia, Valor: valor}
		}
	}

	if countMesa > 0 {
		m.TicketMedioMesa = totalMesa / float64(countMesa)
	}
	if countDelivery > 0 {
		m.TicketMedioDelivery = totalDelivery / float64(countDelivery)
	}

	var totalReceitas float64
	for _, v := range m.VendasPorTurno {
		totalReceitas += v
	}
	var totalDespesas float64
	for _, v := range m.DespesasPorTipo {
		totalDespesas += v
	}

	m.CustoOperacional = totalDespesas
	m.Lucratividade = totalReceitas - totalDespesas
	if totalReceitas > 0 {
		m.MargemLucro = (totalReceitas - totalDespesas) / totalReceitas * 100
		m.PercentualNotas = m.TotalNotasFiscais / totalReceitas * 100
	}

	return m
}
