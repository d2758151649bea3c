package models

import "time"

type TipoDespesa string

const (
	DespesaFixa     TipoDespesa = "FIXA"
	DespesaVariavel TipoDespesa = "VARIAVEL"
	DespesaSaida    TipoDespesa = "SAIDA"
)

type CategoriaDespesa struct {
	ID        uint        `gorm:"primaryKey"`
	Nome      string      `gorm:"size:100;not null"`
	Tipo      TipoDespesa `gorm:"size:20;not null"`
	Ativo     bool        `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Despesa struct {
	ID               uint `gorm:"primaryKey"`
	CaixaID          uint `gorm:"index;not null"`
	Caixa            *Caixa
	Tipo             TipoDespesa `gorm:"size:20;not null"`
	CategoriaID      *uint
	Categoria        *CategoriaDespesa
	Descricao        string  `gorm:"size:200;not null"`
	Valor            float64 `gorm:"not null"`
	FormaPagamentoID *uint
	FormaPagamento   *FormaPagamento
	DataVencimento   *time.Time `gorm:"type:date"`
	Status           string     `gorm:"size:20;default:PAGO"`
	Observacao       string     `gorm:"size:500"`
	DataHora         time.Time  `gorm:"index"`
}
