package estoque

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/DiegoBrito17/caixapro/internal/audit"
	"github.com/DiegoBrito17/caixapro/internal/auth"
	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateProdutoRequest struct {
	Codigo        string  `json:"codigo"`
	Nome          string  `json:"nome"`
	Categoria     string  `json:"categoria"`
	Custo         float64 `json:"custo"`
	PrecoVenda    float64 `json:"preco_venda"`
	Quantidade    int     `json:"quantidade"`
	EstoqueMinimo int     `json:"estoque_minimo"`
	EstoqueMaximo int     `json:"estoque_maximo"`
	Unidade       string  `json:"unidade"`
}

// proximoCodigo gera códigos sequenciais PROD001, PROD002... quando o
// cadastro não informa um código próprio.
func proximoCodigo(tx *gorm.DB) (string, error) {
	var total int64
	if err := tx.Model(&models.Produto{}).Count(&total).Error; err != nil {
		return "", err
	}
	for i := total + 1; ; i++ {
		codigo := fmt.Sprintf("PROD%03d", i)
		var existe int64
		if err := tx.Model(&models.Produto{}).Where("codigo = ?", codigo).Count(&existe).Error; err != nil {
			return "", err
		}
		if existe == 0 {
			return codigo, nil
		}
	}
}

// POST /api/estoque/produtos
// Quantidade inicial > 0 gera uma movimentação ENTRADA junto com o cadastro.
func CreateProdutoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}

		var body CreateProdutoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if strings.TrimSpace(body.Nome) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome é obrigatório")
		}
		if body.Quantidade < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantidade inicial não pode ser negativa")
		}

		unidade := body.Unidade
		if unidade == "" {
			unidade = "UN"
		}

		produto := models.Produto{
			Codigo:        strings.TrimSpace(body.Codigo),
			Nome:          strings.TrimSpace(body.Nome),
			Categoria:     body.Categoria,
			Custo:         body.Custo,
			PrecoVenda:    body.PrecoVenda,
			Quantidade:    body.Quantidade,
			EstoqueMinimo: body.EstoqueMinimo,
			EstoqueMaximo: body.EstoqueMaximo,
			Unidade:       unidade,
			Ativo:         true,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if produto.Codigo == "" {
				codigo, err := proximoCodigo(tx)
				if err != nil {
					return err
				}
				produto.Codigo = codigo
			}
			if err := tx.Create(&produto).Error; err != nil {
				return err
			}
			if produto.Quantidade > 0 {
				mov := models.MovimentacaoEstoque{
					ProdutoID:     produto.ID,
					Tipo:          models.MovEntrada,
					Quantidade:    produto.Quantidade,
					ValorUnitario: produto.Custo,
					ValorTotal:    produto.Custo * float64(produto.Quantidade),
					Motivo:        "Estoque inicial",
					UsuarioID:     claims.UserID,
					DataHora:      time.Now().UTC(),
				}
				if err := tx.Create(&mov).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao cadastrar produto: "+err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(produto)
	}
}

// GET /api/estoque/produtos?ativos=true&categoria=Bebidas
func ListProdutosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Produto{})

		if c.QueryBool("ativos", false) {
			dbq = dbq.Where("ativo = ?", true)
		}
		if cat := c.Query("categoria"); cat != "" {
			dbq = dbq.Where("categoria = ?", cat)
		}

		var produtos []models.Produto
		if err := dbq.Order("nome asc").Find(&produtos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os produtos")
		}
		return c.JSON(produtos)
	}
}

type EditarProdutoRequest struct {
	Nome          *string  `json:"nome"`
	Categoria     *string  `json:"categoria"`
	Custo         *float64 `json:"custo"`
	PrecoVenda    *float64 `json:"preco_venda"`
	EstoqueMinimo *int     `json:"estoque_minimo"`
	EstoqueMaximo *int     `json:"estoque_maximo"`
	Unidade       *string  `json:"unidade"`
}

// PUT /api/estoque/produtos/:id
// Quantidade não é editável aqui: ajustes passam por movimentação AJUSTE.
func EditarProdutoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var produto models.Produto
		if err := database.DB.First(&produto, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produto não encontrado")
		}

		var body EditarProdutoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		updates := map[string]interface{}{}
		if body.Nome != nil {
			updates["nome"] = *body.Nome
		}
		if body.Categoria != nil {
			updates["categoria"] = *body.Categoria
		}
		if body.Custo != nil {
			updates["custo"] = *body.Custo
		}
		if body.PrecoVenda != nil {
			updates["preco_venda"] = *body.PrecoVenda
		}
		if body.EstoqueMinimo != nil {
			updates["estoque_minimo"] = *body.EstoqueMinimo
		}
		if body.EstoqueMaximo != nil {
			updates["estoque_maximo"] = *body.EstoqueMaximo
		}
		if body.Unidade != nil {
			updates["unidade"] = *body.Unidade
		}
		if len(updates) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nada para atualizar")
		}

		if err := database.DB.Model(&produto).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar produto: "+err.Error())
		}
		return c.JSON(fiber.Map{"mensagem": "Produto atualizado com sucesso!"})
	}
}

// PUT /api/estoque/produtos/:id/toggle
func ToggleProdutoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")

		var produto models.Produto
		if err := database.DB.First(&produto, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produto não encontrado")
		}

		produto.Ativo = !produto.Ativo
		if err := database.DB.Save(&produto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar produto: "+err.Error())
		}
		return c.JSON(fiber.Map{"id": produto.ID, "ativo": produto.Ativo})
	}
}

type MovimentacaoRequest struct {
	ProdutoID     uint                    `json:"produto_id"`
	Tipo          models.TipoMovimentacao `json:"tipo"` // ENTRADA | SAIDA | AJUSTE
	Quantidade    int                     `json:"quantidade"`
	ValorUnitario float64                 `json:"valor_unitario"`
	Motivo        string                  `json:"motivo"`
	Observacao    string                  `json:"observacao"`
}

// POST /api/estoque/movimentacoes
func CreateMovimentacaoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}

		var body MovimentacaoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		var produto models.Produto
		if err := database.DB.First(&produto, body.ProdutoID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produto não encontrado")
		}

		novaQtd, err := AplicarMovimento(produto.Quantidade, body.Tipo, body.Quantidade)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		mov := models.MovimentacaoEstoque{
			ProdutoID:     produto.ID,
			Tipo:          body.Tipo,
			Quantidade:    body.Quantidade,
			ValorUnitario: body.ValorUnitario,
			ValorTotal:    body.ValorUnitario * float64(body.Quantidade),
			Motivo:        body.Motivo,
			Observacao:    body.Observacao,
			UsuarioID:     claims.UserID,
			DataHora:      time.Now().UTC(),
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&mov).Error; err != nil {
				return err
			}
			return tx.Model(&produto).Update("quantidade", novaQtd).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao registrar movimentação: "+err.Error())
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UsuarioID:   claims.UserID,
			UsuarioNome: claims.UserNome,
			EntityType:  "movimentacao_estoque",
			EntityID:    mov.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Movimentação %s de %d un. do produto %s", mov.Tipo, mov.Quantidade, produto.Codigo),
			After:       body,
		}); logErr != nil {
			log.Printf("Audit log não gravado: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":         mov.ID,
			"quantidade": novaQtd,
			"mensagem":   "Movimentação registrada com sucesso!",
		})
	}
}

// GET /api/estoque/movimentacoes?produto_id=3&limit=100
func ListMovimentacoesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.MovimentacaoEstoque{}).
			Preload("Produto").
			Preload("Usuario")

		if pid := c.QueryInt("produto_id"); pid > 0 {
			dbq = dbq.Where("produto_id = ?", pid)
		}
		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		var movs []models.MovimentacaoEstoque
		if err := dbq.Order("data_hora desc").Limit(limit).Find(&movs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as movimentações")
		}
		return c.JSON(movs)
	}
}

// GET /api/estoque/resumo — visão geral com produtos críticos e baixos.
// Crítico: quantidade até 30% do estoque mínimo. Baixo: acima disso, mas
// ainda dentro do mínimo.
func ResumoEstoqueHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var produtos []models.Produto
		if err := database.DB.Where("ativo = ?", true).Order("nome asc").Find(&produtos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar o estoque")
		}

		var criticos, baixos []models.Produto
		var valorTotal float64
		for _, p := range produtos {
			valorTotal += p.Custo * float64(p.Quantidade)
			switch {
			case float64(p.Quantidade) <= float64(p.EstoqueMinimo)*0.3:
				criticos = append(criticos, p)
			case p.Quantidade <= p.EstoqueMinimo:
				baixos = append(baixos, p)
			}
		}

		return c.JSON(fiber.Map{
			"total_produtos": len(produtos),
			"valor_total":    valorTotal,
			"criticos":       criticos,
			"baixos":         baixos,
		})
	}
}
