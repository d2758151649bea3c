package admin

import (
	"fmt"
	"log"
	"strings"

	"github.com/DiegoBrito17/caixapro/internal/audit"
	"github.com/DiegoBrito17/caixapro/internal/auth"
	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UsuarioResponse struct {
	ID                  uint          `json:"id"`
	Nome                string        `json:"nome"`
	Perfil              models.Perfil `json:"perfil"`
	AcessoDashboard     bool          `json:"acesso_dashboard"`
	AcessoConfiguracoes bool          `json:"acesso_configuracoes"`
	AcessoRelatorios    bool          `json:"acesso_relatorios"`
	Ativo               bool          `json:"ativo"`
}

func toUsuarioResponse(u *models.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:                  u.ID,
		Nome:                u.Nome,
		Perfil:              u.Perfil,
		AcessoDashboard:     u.AcessoDashboard,
		AcessoConfiguracoes: u.AcessoConfiguracoes,
		AcessoRelatorios:    u.AcessoRelatorios,
		Ativo:               u.Ativo,
	}
}

// GET /api/admin/usuarios
func ListUsuariosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var usuarios []models.Usuario
		if err := database.DB.Order("nome asc").Find(&usuarios).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os usuários")
		}

		resp := make([]UsuarioResponse, 0, len(usuarios))
		for i := range usuarios {
			resp = append(resp, toUsuarioResponse(&usuarios[i]))
		}
		return c.JSON(resp)
	}
}

type CreateUsuarioRequest struct {
	Nome                string        `json:"nome"`
	Senha               string        `json:"senha"`
	Perfil              models.Perfil `json:"perfil"`
	AcessoDashboard     bool          `json:"acesso_dashboard"`
	AcessoConfiguracoes bool          `json:"acesso_configuracoes"`
	AcessoRelatorios    bool          `json:"acesso_relatorios"`
}

// POST /api/admin/usuarios
// Só o MASTER pode criar outro MASTER.
func CreateUsuarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}

		var body CreateUsuarioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		nome := strings.TrimSpace(body.Nome)
		if nome == "" || body.Senha == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome e senha são obrigatórios")
		}
		if len(body.Senha) < 4 {
			return fiber.NewError(fiber.StatusBadRequest, "Senha muito curta")
		}

		perfil := body.Perfil
		if perfil == "" {
			perfil = models.PerfilOperador
		}
		switch perfil {
		case models.PerfilOperador, models.PerfilAdmin:
		case models.PerfilMaster:
			if claims.Perfil != models.PerfilMaster {
				return fiber.NewError(fiber.StatusForbidden, "Apenas o MASTER pode criar outro MASTER")
			}
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Perfil inválido (OPERADOR|ADMIN|MASTER)")
		}

		var existente models.Usuario
		if err := database.DB.Where("LOWER(nome) = LOWER(?)", nome).First(&existente).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Já existe um usuário com esse nome")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Senha), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao processar a senha")
		}

		usuario := models.Usuario{
			Nome:                nome,
			SenhaHash:           string(hash),
			Perfil:              perfil,
			AcessoDashboard:     body.AcessoDashboard,
			AcessoConfiguracoes: body.AcessoConfiguracoes,
			AcessoRelatorios:    body.AcessoRelatorios,
			Ativo:               true,
		}
		if err := database.DB.Create(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao criar usuário: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "usuario",
			EntityID:    usuario.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Usuário %s (%s) criado", usuario.Nome, usuario.Perfil),
			After:       toUsuarioResponse(&usuario),
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toUsuarioResponse(&usuario))
	}
}

type EditarUsuarioRequest struct {
	Nome                *string        `json:"nome"`
	Perfil              *models.Perfil `json:"perfil"`
	AcessoDashboard     *bool          `json:"acesso_dashboard"`
	AcessoConfiguracoes *bool          `json:"acesso_configuracoes"`
	AcessoRelatorios    *bool          `json:"acesso_relatorios"`
}

// PUT /api/admin/usuarios/:id
func EditarUsuarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}
		id, _ := c.ParamsInt("id")

		var usuario models.Usuario
		if err := database.DB.First(&usuario, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}
		if usuario.Perfil == models.PerfilMaster && claims.Perfil != models.PerfilMaster {
			return fiber.NewError(fiber.StatusForbidden, "Apenas o MASTER pode editar o MASTER")
		}

		var body EditarUsuarioRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		antes := toUsuarioResponse(&usuario)

		if body.Nome != nil && strings.TrimSpace(*body.Nome) != "" {
			usuario.Nome = strings.TrimSpace(*body.Nome)
		}
		if body.Perfil != nil {
			switch *body.Perfil {
			case models.PerfilOperador, models.PerfilAdmin:
			case models.PerfilMaster:
				if claims.Perfil != models.PerfilMaster {
					return fiber.NewError(fiber.StatusForbidden, "Apenas o MASTER pode promover a MASTER")
				}
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Perfil inválido (OPERADOR|ADMIN|MASTER)")
			}
			usuario.Perfil = *body.Perfil
		}
		if body.AcessoDashboard != nil {
			usuario.AcessoDashboard = *body.AcessoDashboard
		}
		if body.AcessoConfiguracoes != nil {
			usuario.AcessoConfiguracoes = *body.AcessoConfiguracoes
		}
		if body.AcessoRelatorios != nil {
			usuario.AcessoRelatorios = *body.AcessoRelatorios
		}

		if err := database.DB.Save(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar usuário: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "usuario",
			EntityID:    usuario.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Usuário %s atualizado", usuario.Nome),
			Before:      antes,
			After:       toUsuarioResponse(&usuario),
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.JSON(toUsuarioResponse(&usuario))
	}
}

type EditarSenhaRequest struct {
	Senha string `json:"senha"`
}

// PUT /api/admin/usuarios/:id/senha
func EditarSenhaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}
		id, _ := c.ParamsInt("id")

		var usuario models.Usuario
		if err := database.DB.First(&usuario, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}
		if usuario.Perfil == models.PerfilMaster && claims.Perfil != models.PerfilMaster {
			return fiber.NewError(fiber.StatusForbidden, "Apenas o MASTER pode alterar a senha do MASTER")
		}

		var body EditarSenhaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if len(body.Senha) < 4 {
			return fiber.NewError(fiber.StatusBadRequest, "Senha muito curta")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Senha), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao processar a senha")
		}

		if err := database.DB.Model(&usuario).Update("senha_hash", string(hash)).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar a senha: "+err.Error())
		}
		return c.JSON(fiber.Map{"mensagem": "Senha atualizada com sucesso!"})
	}
}

// PUT /api/admin/usuarios/:id/toggle
// Não deixa desativar o último ADMIN/MASTER ativo.
func ToggleUsuarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}
		id, _ := c.ParamsInt("id")

		var usuario models.Usuario
		if err := database.DB.First(&usuario, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}
		if usuario.ID == claims.UserID {
			return fiber.NewError(fiber.StatusBadRequest, "Você não pode desativar a si mesmo")
		}

		if usuario.Ativo && usuario.EhAdmin() {
			var admins int64
			database.DB.Model(&models.Usuario{}).
				Where("perfil IN ? AND ativo = ? AND id <> ?", []models.Perfil{models.PerfilAdmin, models.PerfilMaster}, true, usuario.ID).
				Count(&admins)
			if admins == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Não é possível desativar o último administrador")
			}
		}

		usuario.Ativo = !usuario.Ativo
		if err := database.DB.Save(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar usuário: "+err.Error())
		}
		return c.JSON(fiber.Map{"id": usuario.ID, "ativo": usuario.Ativo})
	}
}

// DELETE /api/admin/usuarios/:id
func DeletarUsuarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}
		id, _ := c.ParamsInt("id")

		var usuario models.Usuario
		if err := database.DB.First(&usuario, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Usuário não encontrado")
		}
		if usuario.ID == claims.UserID {
			return fiber.NewError(fiber.StatusBadRequest, "Você não pode excluir a si mesmo")
		}
		if usuario.Perfil == models.PerfilMaster {
			return fiber.NewError(fiber.StatusForbidden, "O usuário MASTER não pode ser excluído")
		}

		if usuario.EhAdmin() {
			var admins int64
			database.DB.Model(&models.Usuario{}).
				Where("perfil IN ? AND ativo = ? AND id <> ?", []models.Perfil{models.PerfilAdmin, models.PerfilMaster}, true, usuario.ID).
				Count(&admins)
			if admins == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Não é possível excluir o último administrador")
			}
		}

		if err := database.DB.Delete(&usuario).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao excluir usuário: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "usuario",
			EntityID:    usuario.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Usuário %s excluído", usuario.Nome),
			Before:      toUsuarioResponse(&usuario),
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.JSON(fiber.Map{"mensagem": "Usuário excluído com sucesso!"})
	}
}
