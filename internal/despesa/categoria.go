package despesa

import (
	"strings"

	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/categorias?tipo=FIXA&ativas=true
func ListCategoriasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.CategoriaDespesa{})

		if tipo := c.Query("tipo"); tipo != "" {
			dbq = dbq.Where("tipo = ?", strings.ToUpper(tipo))
		}
		if c.QueryBool("ativas", false) {
			dbq = dbq.Where("ativo = ?", true)
		}

		var categorias []models.CategoriaDespesa
		if err := dbq.Order("nome asc").Find(&categorias).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as categorias")
		}
		return c.JSON(categorias)
	}
}

type CategoriaRequest struct {
	Nome string             `json:"nome"`
	Tipo models.TipoDespesa `json:"tipo"`
}

// POST /api/admin/categorias
// Nome duplicado dentro do mesmo tipo é rejeitado.
func CreateCategoriaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoriaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		nome := strings.TrimSpace(body.Nome)
		if nome == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome é obrigatório")
		}
		if !tipoValido(body.Tipo) {
			return fiber.NewError(fiber.StatusBadRequest, "Tipo inválido (FIXA|VARIAVEL|SAIDA)")
		}

		var existente models.CategoriaDespesa
		if err := database.DB.Where("LOWER(nome) = LOWER(?) AND tipo = ?", nome, body.Tipo).
			First(&existente).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Já existe uma categoria com esse nome")
		}

		cat := models.CategoriaDespesa{Nome: nome, Tipo: body.Tipo, Ativo: true}
		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao criar categoria: "+err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}

// PUT /api/admin/categorias/:id
func EditarCategoriaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var cat models.CategoriaDespesa
		if err := database.DB.First(&cat, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Categoria não encontrada")
		}

		var body CategoriaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		nome := strings.TrimSpace(body.Nome)
		if nome != "" && !strings.EqualFold(nome, cat.Nome) {
			var existente models.CategoriaDespesa
			if err := database.DB.Where("LOWER(nome) = LOWER(?) AND tipo = ? AND id <> ?", nome, cat.Tipo, cat.ID).
				First(&existente).Error; err == nil {
				return fiber.NewError(fiber.StatusConflict, "Já existe uma categoria com esse nome")
			}
			cat.Nome = nome
		}
		if body.Tipo != "" {
			if !tipoValido(body.Tipo) {
				return fiber.NewError(fiber.StatusBadRequest, "Tipo inválido (FIXA|VARIAVEL|SAIDA)")
			}
			cat.Tipo = body.Tipo
		}

		if err := database.DB.Save(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar categoria: "+err.Error())
		}
		return c.JSON(cat)
	}
}

// PUT /api/admin/categorias/:id/toggle
func ToggleCategoriaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var cat models.CategoriaDespesa
		if err := database.DB.First(&cat, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Categoria não encontrada")
		}

		cat.Ativo = !cat.Ativo
		if err := database.DB.Save(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar categoria: "+err.Error())
		}
		return c.JSON(fiber.Map{"id": cat.ID, "ativo": cat.Ativo})
	}
}

// DELETE /api/admin/categorias/:id
// As despesas já lançadas sobrevivem: ficam sem categoria e os relatórios
// param de agrupá-las por nome.
func DeletarCategoriaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var cat models.CategoriaDespesa
		if err := database.DB.First(&cat, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Categoria não encontrada")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Despesa{}).
				Where("categoria_id = ?", cat.ID).
				Update("categoria_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&cat).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao remover categoria: "+err.Error())
		}
		return c.JSON(fiber.Map{"mensagem": "Categoria removida com sucesso!"})
	}
}
