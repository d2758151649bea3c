package audit

import (
	"encoding/json"
	"fmt"

	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"
)

type LogOptions struct {
	UsuarioID   uint
	UsuarioNome string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog grava uma entrada de auditoria. Falha aqui nunca derruba a
// operação principal; o chamador só loga o erro.
func WriteLog(opts LogOptions) error {
	// jsonb não aceita string vazia, o default precisa ser o JSON "null"
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		UsuarioID:   opts.UsuarioID,
		UsuarioNome: opts.UsuarioNome,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log não pôde ser gravado: %w", err)
	}
	return nil
}
