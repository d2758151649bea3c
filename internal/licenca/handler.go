package licenca

import (
	"strings"
	"time"

	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AtivacaoRequest struct {
	Email string `json:"email"`
	Chave string `json:"chave"`
	Nome  string `json:"nome"` // nome amigável do dispositivo, opcional
}

// POST /api/ativacao — rota pública. Ativa (ou reativa) a licença do email
// informado e registra o dispositivo atual pela fingerprint.
func AtivacaoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AtivacaoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		email := strings.ToLower(strings.TrimSpace(body.Email))
		chave := NormalizarChave(body.Chave)
		if email == "" || chave == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email e chave de ativação são obrigatórios")
		}

		var lic models.Licenca
		err := database.DB.Where("email = ?", email).First(&lic).Error
		if err != nil {
			// Primeira ativação deste email
			lic = models.Licenca{Email: email, MaxDispositivos: 2}
		} else if lic.ChaveAtivacao != chave {
			return fiber.NewError(fiber.StatusUnauthorized, "Chave de ativação inválida para este email")
		}
		if lic.Status == models.LicencaBloqueada || (lic.ID != 0 && !lic.Ativo) {
			return fiber.NewError(fiber.StatusForbidden, "Licença bloqueada. Entre em contato com o suporte.")
		}

		agora := time.Now().UTC()
		expiracao := agora.AddDate(1, 0, 0)
		lic.ChaveAtivacao = chave
		lic.DataAtivacao = agora
		lic.DataExpiracao = &expiracao
		lic.Status = models.LicencaAtiva
		lic.Ativo = true

		if err := database.DB.Save(&lic).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao ativar a licença: "+err.Error())
		}

		fp := Fingerprint(c.IP(), c.Get(fiber.HeaderUserAgent))
		dispositivo, err := registrarDispositivo(&lic, fp, c.IP(), c.Get(fiber.HeaderUserAgent), body.Nome)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"mensagem":       "Licença ativada com sucesso!",
			"data_expiracao": expiracao.Format("2006-01-02"),
			"dispositivo":    dispositivo.ID,
		})
	}
}

// registrarDispositivo grava (ou atualiza) o dispositivo da fingerprint,
// respeitando o limite de dispositivos da licença.
func registrarDispositivo(lic *models.Licenca, fp, ip, userAgent, nome string) (*models.Dispositivo, error) {
	agora := time.Now().UTC()

	var disp models.Dispositivo
	if err := database.DB.Where("fingerprint = ?", fp).First(&disp).Error; err == nil {
		if disp.Status == models.DispositivoBloqueado {
			return nil, fiber.NewError(fiber.StatusForbidden, "Este dispositivo está bloqueado")
		}
		disp.UltimoAcesso = agora
		if nome != "" {
			disp.Nome = nome
		}
		if err := database.DB.Save(&disp).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar o dispositivo")
		}
		return &disp, nil
	}

	var ativos int64
	database.DB.Model(&models.Dispositivo{}).
		Where("licenca_id = ? AND status = ?", lic.ID, models.DispositivoAtivo).
		Count(&ativos)
	if int(ativos) >= lic.MaxDispositivos {
		return nil, fiber.NewError(fiber.StatusForbidden, "Limite de dispositivos atingido para esta licença")
	}

	disp = models.Dispositivo{
		LicencaID:    lic.ID,
		Nome:         nome,
		EnderecoIP:   ip,
		UserAgent:    userAgent,
		Fingerprint:  fp,
		DataRegistro: agora,
		UltimoAcesso: agora,
		Status:       models.DispositivoAtivo,
	}
	if err := database.DB.Create(&disp).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Erro ao registrar o dispositivo")
	}
	return &disp, nil
}

// GET /api/master/licencas
func ListLicencasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var licencas []models.Licenca
		if err := database.DB.Preload("Dispositivos").Order("email asc").Find(&licencas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as licenças")
		}
		return c.JSON(licencas)
	}
}

// POST /api/master/licencas/:id/nova-chave
// A chave antiga deixa de valer; os dispositivos registrados permanecem.
func GerarNovaChaveHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var lic models.Licenca
		if err := database.DB.First(&lic, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Licença não encontrada")
		}

		chave, err := GerarChave()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if err := database.DB.Model(&lic).Update("chave_ativacao", chave).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao gravar a nova chave: "+err.Error())
		}
		return c.JSON(fiber.Map{"chave": chave})
	}
}

// PUT /api/master/licencas/:id/toggle — alterna entre ATIVA e BLOQUEADA.
func ToggleLicencaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var lic models.Licenca
		if err := database.DB.First(&lic, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Licença não encontrada")
		}

		if lic.Status == models.LicencaBloqueada {
			lic.Status = models.LicencaAtiva
			lic.Ativo = true
		} else {
			lic.Status = models.LicencaBloqueada
			lic.Ativo = false
		}
		if err := database.DB.Save(&lic).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar a licença: "+err.Error())
		}
		return c.JSON(fiber.Map{"id": lic.ID, "status": lic.Status})
	}
}

// DELETE /api/master/licencas/:id — remove a licença e seus dispositivos.
func DeletarLicencaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var lic models.Licenca
		if err := database.DB.First(&lic, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Licença não encontrada")
		}

		if err := database.DB.Where("licenca_id = ?", lic.ID).Delete(&models.Dispositivo{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao remover os dispositivos: "+err.Error())
		}
		if err := database.DB.Delete(&lic).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao remover a licença: "+err.Error())
		}
		return c.JSON(fiber.Map{"mensagem": "Licença removida com sucesso!"})
	}
}

// GET /api/master/dispositivos
func ListDispositivosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var dispositivos []models.Dispositivo
		if err := database.DB.Preload("Licenca").Order("ultimo_acesso desc").Find(&dispositivos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os dispositivos")
		}
		return c.JSON(dispositivos)
	}
}

func mudarStatusDispositivo(c *fiber.Ctx, status models.StatusDispositivo) error {
	id, _ := c.ParamsInt("id")

	var disp models.Dispositivo
	if err := database.DB.First(&disp, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Dispositivo não encontrado")
	}

	if err := database.DB.Model(&disp).Update("status", status).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar o dispositivo: "+err.Error())
	}
	return c.JSON(fiber.Map{"id": disp.ID, "status": status})
}

// PUT /api/master/dispositivos/:id/bloquear
func BloquearDispositivoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return mudarStatusDispositivo(c, models.DispositivoBloqueado)
	}
}

// PUT /api/master/dispositivos/:id/desbloquear
func DesbloquearDispositivoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return mudarStatusDispositivo(c, models.DispositivoAtivo)
	}
}

// DELETE /api/master/dispositivos/:id
func DeletarDispositivoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var disp models.Dispositivo
		if err := database.DB.First(&disp, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Dispositivo não encontrado")
		}
		if err := database.DB.Delete(&disp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao remover o dispositivo: "+err.Error())
		}
		return c.JSON(fiber.Map{"mensagem": "Dispositivo removido com sucesso!"})
	}
}

// PUT /api/master/dispositivos/bloquear-todos
func BloquearTodosDispositivosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := database.DB.Model(&models.Dispositivo{}).
			Where("status = ?", models.DispositivoAtivo).
			Update("status", models.DispositivoBloqueado)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao bloquear os dispositivos: "+res.Error.Error())
		}
		return c.JSON(fiber.Map{"bloqueados": res.RowsAffected})
	}
}
