package licenca

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DiegoBrito17/caixapro/internal/auth"
	"github.com/DiegoBrito17/caixapro/internal/config"
	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/gofiber/fiber/v2"
)

// nomeBackupSeguro rejeita tentativas de path traversal e restringe a
// extensão a .db, que é o único formato de backup aceito.
func nomeBackupSeguro(nome string) (string, error) {
	base := filepath.Base(nome)
	if base != nome || strings.Contains(nome, "..") {
		return "", fiber.NewError(fiber.StatusBadRequest, "Nome de arquivo inválido")
	}
	if !strings.HasSuffix(strings.ToLower(base), ".db") {
		return "", fiber.NewError(fiber.StatusBadRequest, "Apenas arquivos .db são aceitos")
	}
	return base, nil
}

// POST /api/master/backups — multipart upload do arquivo de backup.
func UploadBackupHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}

		file, err := c.FormFile("arquivo")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Arquivo de backup não enviado")
		}

		nome, err := nomeBackupSeguro(file.Filename)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.BackupPath, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível preparar a pasta de backups")
		}

		destino := filepath.Join(cfg.BackupPath, fmt.Sprintf("%s_%s",
			time.Now().UTC().Format("20060102_150405"), nome))
		if err := c.SaveFile(file, destino); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao salvar o backup: "+err.Error())
		}

		backup := models.Backup{
			NomeArquivo: filepath.Base(destino),
			Tamanho:     file.Size,
			DataBackup:  time.Now().UTC(),
			UsuarioID:   claims.UserID,
			Observacao:  c.FormValue("observacao"),
		}
		if err := database.DB.Create(&backup).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao registrar o backup: "+err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(backup)
	}
}

// GET /api/master/backups
func ListBackupsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var backups []models.Backup
		if err := database.DB.Preload("Usuario").Order("data_backup desc").Find(&backups).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os backups")
		}
		return c.JSON(backups)
	}
}

// GET /api/master/backups/:id/download
func DownloadBackupHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var backup models.Backup
		if err := database.DB.First(&backup, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Backup não encontrado")
		}

		caminho := filepath.Join(cfg.BackupPath, backup.NomeArquivo)
		if _, err := os.Stat(caminho); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Arquivo de backup não encontrado no disco")
		}
		return c.Download(caminho, backup.NomeArquivo)
	}
}

// DELETE /api/master/backups/:id
func DeletarBackupHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var backup models.Backup
		if err := database.DB.First(&backup, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Backup não encontrado")
		}

		caminho := filepath.Join(cfg.BackupPath, backup.NomeArquivo)
		if err := os.Remove(caminho); err != nil && !os.IsNotExist(err) {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao remover o arquivo: "+err.Error())
		}
		if err := database.DB.Delete(&backup).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao remover o backup: "+err.Error())
		}
		return c.JSON(fiber.Map{"mensagem": "Backup removido com sucesso!"})
	}
}
