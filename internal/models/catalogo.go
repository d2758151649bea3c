package models

import "time"

// Cadastros de apoio. Nunca são referenciados "hard" depois de usados:
// excluir um registro deixa os pagamentos históricos com referência nula,
// e a agregação trata isso como "sem classificação".

type FormaPagamento struct {
	ID        uint   `gorm:"primaryKey"`
	Nome      string `gorm:"size:50;uniqueIndex;not null"`
	Ativo     bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BandeiraCartao struct {
	ID        uint   `gorm:"primaryKey"`
	Nome      string `gorm:"size:50;uniqueIndex;not null"`
	Ativo     bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Motoboy struct {
	ID         uint    `gorm:"primaryKey"`
	Nome       string  `gorm:"size:100;not null"`
	TaxaPadrao float64 `gorm:"default:5"`
	Ativo      bool    `gorm:"default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
