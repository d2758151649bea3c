package models

import "time"

type StatusCaixa string

const (
	CaixaAberto  StatusCaixa = "ABERTO"
	CaixaFechado StatusCaixa = "FECHADO"
)

// Caixa: período contábil de um operador, delimitado por abertura/fechamento.
// O índice único (data, turno) fecha a corrida de dois operadores abrindo o
// mesmo turno ao mesmo tempo.
type Caixa struct {
	ID             uint      `gorm:"primaryKey"`
	Data           time.Time `gorm:"type:date;not null;uniqueIndex:idx_caixa_data_turno"`
	Turno          string    `gorm:"size:20;not null;uniqueIndex:idx_caixa_data_turno"`
	OperadorID     uint      `gorm:"index"`
	Operador       Usuario
	SaldoInicial   float64     `gorm:"default:0"`
	SaldoFinal     float64     `gorm:"default:0"`
	Status         StatusCaixa `gorm:"size:20;not null;default:ABERTO;index"`
	HoraAbertura   time.Time
	HoraFechamento *time.Time

	Vendas      []Venda
	Deliveries  []Delivery
	Despesas    []Despesa
	Sangrias    []Sangria
	Suprimentos []Suprimento
}
