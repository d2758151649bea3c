package models

import "time"

type Perfil string

const (
	PerfilOperador Perfil = "OPERADOR"
	PerfilAdmin    Perfil = "ADMIN"
	PerfilMaster   Perfil = "MASTER"
)

type Usuario struct {
	ID                  uint   `gorm:"primaryKey"`
	Nome                string `gorm:"size:100;uniqueIndex;not null"`
	SenhaHash           string `gorm:"size:255;not null"`
	Perfil              Perfil `gorm:"size:20;not null;default:OPERADOR"`
	AcessoDashboard     bool   `gorm:"default:true"`
	AcessoConfiguracoes bool   `gorm:"default:false"`
	AcessoRelatorios    bool   `gorm:"default:false"`
	Ativo               bool   `gorm:"default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// PodeAcessarDashboard: MASTER sempre pode, os demais dependem da flag.
func (u *Usuario) PodeAcessarDashboard() bool {
	return u.Perfil == PerfilMaster || u.AcessoDashboard
}

func (u *Usuario) PodeAcessarConfiguracoes() bool {
	return u.Perfil == PerfilMaster || u.AcessoConfiguracoes
}

func (u *Usuario) PodeAcessarRelatorios() bool {
	return u.Perfil == PerfilMaster || u.AcessoRelatorios
}

func (u *Usuario) EhAdmin() bool {
	return u.Perfil == PerfilAdmin || u.Perfil == PerfilMaster
}
