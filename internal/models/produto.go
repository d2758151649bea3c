package models

import "time"

type TipoMovimentacao string

const (
	MovEntrada TipoMovimentacao = "ENTRADA"
	MovSaida   TipoMovimentacao = "SAIDA"
	MovAjuste  TipoMovimentacao = "AJUSTE"
)

// Estoque é um subsistema independente, sem vínculo com caixas.
type Produto struct {
	ID            uint   `gorm:"primaryKey"`
	Codigo        string `gorm:"size:50;uniqueIndex"`
	Nome          string `gorm:"size:200;not null"`
	Categoria     string `gorm:"size:50"`
	Custo         float64 `gorm:"default:0"`
	PrecoVenda    float64 `gorm:"default:0"`
	Quantidade    int     `gorm:"default:0"`
	EstoqueMinimo int     `gorm:"default:0"`
	EstoqueMaximo int     `gorm:"default:0"`
	Unidade       string  `gorm:"size:10;default:UN"`
	Ativo         bool    `gorm:"default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type MovimentacaoEstoque struct {
	ID            uint `gorm:"primaryKey"`
	ProdutoID     uint `gorm:"index;not null"`
	Produto       *Produto
	Tipo          TipoMovimentacao `gorm:"size:20;not null"`
	Quantidade    int              `gorm:"not null"`
	ValorUnitario float64          `gorm:"default:0"`
	ValorTotal    float64          `gorm:"default:0"`
	Motivo        string           `gorm:"size:100"`
	Observacao    string           `gorm:"size:500"`
	UsuarioID     uint             `gorm:"index"`
	Usuario       *Usuario
	DataHora      time.Time `gorm:"index"`
}
