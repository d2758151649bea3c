package admin

import (
	"strings"

	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Cadastros de apoio (formas de pagamento, bandeiras, motoboys) seguem o
// mesmo padrão: listar, criar com nome único, editar, ativar/desativar e
// excluir. A exclusão não apaga o histórico: pagamentos e entregas antigos
// ficam com a referência nula e os relatórios os ignoram na classificação.

type NomeRequest struct {
	Nome string `json:"nome"`
}

// GET /api/formas-pagamento?ativas=true
func ListFormasPagamentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.FormaPagamento{})
		if c.QueryBool("ativas", false) {
			dbq = dbq.Where("ativo = ?", true)
		}
		var formas []models.FormaPagamento
		if err := dbq.Order("nome asc").Find(&formas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as formas de pagamento")
		}
		return c.JSON(formas)
	}
}

// POST /api/admin/formas-pagamento
func CreateFormaPagamentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body NomeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		nome := strings.TrimSpace(body.Nome)
		if nome == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome é obrigatório")
		}

		var existente models.FormaPagamento
		if err := database.DB.Where("LOWER(nome) = LOWER(?)", nome).First(&existente).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Já existe uma forma de pagamento com esse nome")
		}

		forma := models.FormaPagamento{Nome: nome, Ativo: true}
		if err := database.DB.Create(&forma).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao criar forma de pagamento: "+err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(forma)
	}
}

// PUT /api/admin/formas-pagamento/:id
func EditarFormaPagamentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var forma models.FormaPagamento
		if err := database.DB.First(&forma, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Forma de pagamento não encontrada")
		}

		var body NomeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		nome := strings.TrimSpace(body.Nome)
		if nome == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome é obrigatório")
		}

		var existente models.FormaPagamento
		if err := database.DB.Where("LOWER(nome) = LOWER(?) AND id <> ?", nome, forma.ID).First(&existente).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Já existe uma forma de pagamento com esse nome")
		}

		forma.Nome = nome
		if err := database.DB.Save(&forma).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar forma de pagamento: "+err.Error())
		}
		return c.JSON(forma)
	}
}

// PUT /api/admin/formas-pagamento/:id/toggle
func ToggleFormaPagamentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var forma models.FormaPagamento
		if err := database.DB.First(&forma, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Forma de pagamento não encontrada")
		}

		forma.Ativo = !forma.Ativo
		if err := database.DB.Save(&forma).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar forma de pagamento: "+err.Error())
		}
		return c.JSON(fiber.Map{"id": forma.ID, "ativo": forma.Ativo})
	}
}

// DELETE /api/admin/formas-pagamento/:id
func DeletarFormaPagamentoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var forma models.FormaPagamento
		if err := database.DB.First(&forma, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Forma de pagamento não encontrada")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.PagamentoVenda{}).
				Where("forma_pagamento_id = ?", forma.ID).
				Update("forma_pagamento_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.PagamentoDelivery{}).
				Where("forma_pagamento_id = ?", forma.ID).
				Update("forma_pagamento_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&forma).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao remover forma de pagamento: "+err.Error())
		}
		return c.JSON(fiber.Map{"mensagem": "Forma de pagamento removida com sucesso!"})
	}
}

// GET /api/bandeiras?ativas=true
func ListBandeirasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.BandeiraCartao{})
		if c.QueryBool("ativas", false) {
			dbq = dbq.Where("ativo = ?", true)
		}
		var bandeiras []models.BandeiraCartao
		if err := dbq.Order("nome asc").Find(&bandeiras).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as bandeiras")
		}
		return c.JSON(bandeiras)
	}
}

// POST /api/admin/bandeiras
func CreateBandeiraHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body NomeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		nome := strings.TrimSpace(body.Nome)
		if nome == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome é obrigatório")
		}

		var existente models.BandeiraCartao
		if err := database.DB.Where("LOWER(nome) = LOWER(?)", nome).First(&existente).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Já existe uma bandeira com esse nome")
		}

		bandeira := models.BandeiraCartao{Nome: nome, Ativo: true}
		if err := database.DB.Create(&bandeira).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao criar bandeira: "+err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(bandeira)
	}
}

// PUT /api/admin/bandeiras/:id
func EditarBandeiraHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var bandeira models.BandeiraCartao
		if err := database.DB.First(&bandeira, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bandeira não encontrada")
		}

		var body NomeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		nome := strings.TrimSpace(body.Nome)
		if nome == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome é obrigatório")
		}

		var existente models.BandeiraCartao
		if err := database.DB.Where("LOWER(nome) = LOWER(?) AND id <> ?", nome, bandeira.ID).First(&existente).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Já existe uma bandeira com esse nome")
		}

		bandeira.Nome = nome
		if err := database.DB.Save(&bandeira).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar bandeira: "+err.Error())
		}
		return c.JSON(bandeira)
	}
}

// PUT /api/admin/bandeiras/:id/toggle
func ToggleBandeiraHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var bandeira models.BandeiraCartao
		if err := database.DB.First(&bandeira, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bandeira não encontrada")
		}

		bandeira.Ativo = !bandeira.Ativo
		if err := database.DB.Save(&bandeira).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar bandeira: "+err.Error())
		}
		return c.JSON(fiber.Map{"id": bandeira.ID, "ativo": bandeira.Ativo})
	}
}

// DELETE /api/admin/bandeiras/:id
func DeletarBandeiraHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var bandeira models.BandeiraCartao
		if err := database.DB.First(&bandeira, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bandeira não encontrada")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.PagamentoVenda{}).
				Where("bandeira_id = ?", bandeira.ID).
				Update("bandeira_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.PagamentoDelivery{}).
				Where("bandeira_id = ?", bandeira.ID).
				Update("bandeira_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&bandeira).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao remover bandeira: "+err.Error())
		}
		return c.JSON(fiber.Map{"mensagem": "Bandeira removida com sucesso!"})
	}
}

type MotoboyRequest struct {
	Nome       string   `json:"nome"`
	TaxaPadrao *float64 `json:"taxa_padrao"`
}

// GET /api/motoboys?ativos=true
func ListMotoboysHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Motoboy{})
		if c.QueryBool("ativos", false) {
			dbq = dbq.Where("ativo = ?", true)
		}
		var motoboys []models.Motoboy
		if err := dbq.Order("nome asc").Find(&motoboys).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os motoboys")
		}
		return c.JSON(motoboys)
	}
}

// POST /api/admin/motoboys
func CreateMotoboyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MotoboyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		nome := strings.TrimSpace(body.Nome)
		if nome == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome é obrigatório")
		}

		motoboy := models.Motoboy{Nome: nome, TaxaPadrao: 5, Ativo: true}
		if body.TaxaPadrao != nil && *body.TaxaPadrao >= 0 {
			motoboy.TaxaPadrao = *body.TaxaPadrao
		}
		if err := database.DB.Create(&motoboy).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao criar motoboy: "+err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(motoboy)
	}
}

// PUT /api/admin/motoboys/:id
func EditarMotoboyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var motoboy models.Motoboy
		if err := database.DB.First(&motoboy, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Motoboy não encontrado")
		}

		var body MotoboyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if nome := strings.TrimSpace(body.Nome); nome != "" {
			motoboy.Nome = nome
		}
		if body.TaxaPadrao != nil && *body.TaxaPadrao >= 0 {
			motoboy.TaxaPadrao = *body.TaxaPadrao
		}

		if err := database.DB.Save(&motoboy).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar motoboy: "+err.Error())
		}
		return c.JSON(motoboy)
	}
}

// PUT /api/admin/motoboys/:id/toggle
func ToggleMotoboyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var motoboy models.Motoboy
		if err := database.DB.First(&motoboy, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Motoboy não encontrado")
		}

		motoboy.Ativo = !motoboy.Ativo
		if err := database.DB.Save(&motoboy).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar motoboy: "+err.Error())
		}
		return c.JSON(fiber.Map{"id": motoboy.ID, "ativo": motoboy.Ativo})
	}
}

// DELETE /api/admin/motoboys/:id
func DeletarMotoboyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var motoboy models.Motoboy
		if err := database.DB.First(&motoboy, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Motoboy não encontrado")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Delivery{}).
				Where("motoboy_id = ?", motoboy.ID).
				Update("motoboy_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&motoboy).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao remover motoboy: "+err.Error())
		}
		return c.JSON(fiber.Map{"mensagem": "Motoboy removido com sucesso!"})
	}
}
