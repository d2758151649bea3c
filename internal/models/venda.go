package models

import "time"

type TipoVenda string

const (
	VendaMesa   TipoVenda = "MESA"
	VendaBalcao TipoVenda = "BALCAO"
)

type Venda struct {
	ID         uint `gorm:"primaryKey"`
	CaixaID    uint `gorm:"index;not null"`
	Caixa      *Caixa
	Tipo       TipoVenda `gorm:"size:20;not null"`
	Numero     int       // mesa ou comanda de balcão
	Total      float64   `gorm:"not null"`
	EmitiuNota bool      `gorm:"default:false"`
	Observacao string    `gorm:"size:500"`
	DataHora   time.Time `gorm:"index"`

	Pagamentos []PagamentoVenda
}

type PagamentoVenda struct {
	ID               uint `gorm:"primaryKey"`
	VendaID          uint `gorm:"index;not null"`
	FormaPagamentoID *uint
	FormaPagamento   *FormaPagamento
	BandeiraID       *uint
	Bandeira         *BandeiraCartao
	Valor            float64 `gorm:"not null"`
	Observacao       string  `gorm:"size:200"`
}
