package models

import "time"

// Sangria: retirada manual de dinheiro da gaveta durante o turno.
type Sangria struct {
	ID         uint `gorm:"primaryKey"`
	CaixaID    uint `gorm:"index;not null"`
	Caixa      *Caixa
	Valor      float64   `gorm:"not null"`
	Motivo     string    `gorm:"size:100;not null"`
	Observacao string    `gorm:"size:200"`
	DataHora   time.Time `gorm:"index"`
}

// Suprimento: entrada manual de dinheiro no caixa.
type Suprimento struct {
	ID         uint `gorm:"primaryKey"`
	CaixaID    uint `gorm:"index;not null"`
	Caixa      *Caixa
	Valor      float64   `gorm:"not null"`
	Motivo     string    `gorm:"size:100;not null"`
	Observacao string    `gorm:"size:200"`
	DataHora   time.Time `gorm:"index"`
}
