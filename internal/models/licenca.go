package models

import "time"

type StatusLicenca string

const (
	LicencaAtiva     StatusLicenca = "ATIVA"
	LicencaExpirada  StatusLicenca = "EXPIRADA"
	LicencaBloqueada StatusLicenca = "BLOQUEADA"
)

type Licenca struct {
	ID              uint   `gorm:"primaryKey"`
	Email           string `gorm:"size:100;uniqueIndex;not null"`
	ChaveAtivacao   string `gorm:"size:50;uniqueIndex;not null"`
	DataAtivacao    time.Time
	DataExpiracao   *time.Time
	Status          StatusLicenca `gorm:"size:20;default:ATIVA"`
	MaxDispositivos int           `gorm:"default:2"`
	Ativo           bool          `gorm:"default:true"`

	Dispositivos []Dispositivo
}

type StatusDispositivo string

const (
	DispositivoAtivo     StatusDispositivo = "ATIVO"
	DispositivoBloqueado StatusDispositivo = "BLOQUEADO"
)

// Dispositivo: entrada da allow-list por fingerprint. Não é fronteira de
// segurança, o fingerprint (md5 de ip|user-agent) é trivialmente forjável.
type Dispositivo struct {
	ID            uint `gorm:"primaryKey"`
	LicencaID     uint `gorm:"index;not null"`
	Licenca       *Licenca
	Nome          string `gorm:"size:100"`
	EnderecoIP    string `gorm:"size:50"`
	UserAgent     string `gorm:"size:200"`
	Fingerprint   string `gorm:"size:100;uniqueIndex"`
	DataRegistro  time.Time
	UltimoAcesso  time.Time
	Status        StatusDispositivo `gorm:"size:20;default:ATIVO"`
}

type Backup struct {
	ID          uint   `gorm:"primaryKey"`
	NomeArquivo string `gorm:"size:200"`
	Tamanho     int64
	DataBackup  time.Time
	UsuarioID   uint `gorm:"index"`
	Usuario     *Usuario
	Observacao  string `gorm:"size:500"`
}
