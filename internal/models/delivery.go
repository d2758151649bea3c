package models

import "time"

type Delivery struct {
	ID          uint `gorm:"primaryKey"`
	CaixaID     uint `gorm:"index;not null"`
	Caixa       *Caixa
	Cliente     string  `gorm:"size:100;not null"`
	Total       float64 `gorm:"not null"`
	TaxaEntrega float64 `gorm:"default:0"`
	MotoboyID   *uint
	Motoboy     *Motoboy
	EmitiuNota  bool      `gorm:"default:false"`
	Observacao  string    `gorm:"size:500"`
	DataHora    time.Time `gorm:"index"`

	Pagamentos []PagamentoDelivery
}

type PagamentoDelivery struct {
	ID               uint `gorm:"primaryKey"`
	DeliveryID       uint `gorm:"index;not null"`
	FormaPagamentoID *uint
	FormaPagamento   *FormaPagamento
	BandeiraID       *uint
	Bandeira         *BandeiraCartao
	Valor            float64 `gorm:"not null"`
	Observacao       string  `gorm:"size:200"`
}
