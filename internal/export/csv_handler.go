package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/DiegoBrito17/caixapro/internal/auth"
	"github.com/DiegoBrito17/caixapro/internal/caixa"
	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"
	"github.com/DiegoBrito17/caixapro/internal/report"

	"github.com/gofiber/fiber/v2"
)

// bomUTF8 na frente do CSV para o Excel PT-BR reconhecer a codificação.
var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

var colunasMovimentos = []string{
	"ID", "Data", "Hora", "Turno", "Operador", "Tipo Movimento", "Tipo Venda",
	"Número Mesa/Balcão", "Cliente", "Endereço", "Telefone", "Valor Bruto",
	"Valor Líquido", "Forma Pagamento", "Bandeira", "Taxa Entrega", "Motoboy",
	"Categoria Despesa", "Descrição", "Observações", "Nota Fiscal",
}

func valor(v float64) string { return fmt.Sprintf("%.2f", v) }

func ouTraco(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func simNao(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// podeExportar: operador sem acesso a configurações só exporta o próprio caixa.
func podeExportar(claims *auth.CaixaClaims, cx *models.Caixa) bool {
	if claims.Perfil == models.PerfilMaster || claims.AcessoConfiguracoes {
		return true
	}
	return cx.OperadorID == claims.UserID
}

// LinhasMovimentosCaixa monta as linhas do log unificado de movimentos:
// uma linha por pagamento de venda/delivery e uma por despesa, sangria e
// suprimento. Sangria aparece com valor líquido negativo.
func LinhasMovimentosCaixa(cx *models.Caixa) [][]string {
	linhas := [][]string{colunasMovimentos}
	operador := cx.Operador.Nome

	for _, venda := range cx.Vendas {
		for _, pag := range venda.Pagamentos {
			forma, bandeira := "-", "-"
			if pag.FormaPagamento != nil {
				forma = pag.FormaPagamento.Nome
			}
			if pag.Bandeira != nil {
				bandeira = pag.Bandeira.Nome
			}
			numero := "-"
			if venda.Numero > 0 {
				numero = fmt.Sprintf("%d", venda.Numero)
			}
			linhas = append(linhas, []string{
				fmt.Sprintf("%d", venda.ID),
				venda.DataHora.Format("02/01/2006"),
				venda.DataHora.Format("15:04:05"),
				cx.Turno, operador,
				"VENDA", string(venda.Tipo), numero,
				"-", "-", "-",
				valor(pag.Valor), valor(pag.Valor),
				forma, bandeira,
				"-", "-", "-", "-",
				ouTraco(venda.Observacao),
				simNao(venda.EmitiuNota),
			})
		}
	}

	for _, del := range cx.Deliveries {
		bruto := del.Total + del.TaxaEntrega
		for _, pag := range del.Pagamentos {
			forma, bandeira := "-", "-"
			if pag.FormaPagamento != nil {
				forma = pag.FormaPagamento.Nome
			}
			if pag.Bandeira != nil {
				bandeira = pag.Bandeira.Nome
			}
			motoboy := "-"
			if del.Motoboy != nil {
				motoboy = del.Motoboy.Nome
			}
			linhas = append(linhas, []string{
				fmt.Sprintf("%d", del.ID),
				del.DataHora.Format("02/01/2006"),
				del.DataHora.Format("15:04:05"),
				cx.Turno, operador,
				"DELIVERY", "-", "-",
				del.Cliente, "-", "-",
				valor(bruto), valor(pag.Valor),
				forma, bandeira,
				valor(del.TaxaEntrega), motoboy,
				"-",
				"-",
				ouTraco(del.Observacao),
				simNao(del.EmitiuNota),
			})
		}
	}

	for _, despesa := range cx.Despesas {
		forma := "-"
		if despesa.FormaPagamento != nil {
			forma = despesa.FormaPagamento.Nome
		}
		categoria := "-"
		if despesa.Categoria != nil {
			categoria = despesa.Categoria.Nome
		}
		linhas = append(linhas, []string{
			fmt.Sprintf("%d", despesa.ID),
			despesa.DataHora.Format("02/01/2006"),
			despesa.DataHora.Format("15:04:05"),
			cx.Turno, operador,
			"DESPESA", string(despesa.Tipo), "-",
			"-", "-", "-",
			valor(despesa.Valor), valor(despesa.Valor),
			forma, "-",
			"-", "-",
			categoria,
			despesa.Descricao,
			ouTraco(despesa.Observacao),
			"-",
		})
	}

	for _, sangria := range cx.Sangrias {
		linhas = append(linhas, []string{
			fmt.Sprintf("%d", sangria.ID),
			sangria.DataHora.Format("02/01/2006"),
			sangria.DataHora.Format("15:04:05"),
			cx.Turno, operador,
			"SANGRIA", "-", "-",
			"-", "-", "-",
			valor(sangria.Valor), "-" + valor(sangria.Valor),
			"-", "-", "-", "-", "-",
			sangria.Motivo,
			ouTraco(sangria.Observacao),
			"-",
		})
	}

	for _, sup := range cx.Suprimentos {
		linhas = append(linhas, []string{
			fmt.Sprintf("%d", sup.ID),
			sup.DataHora.Format("02/01/2006"),
			sup.DataHora.Format("15:04:05"),
			cx.Turno, operador,
			"SUPRIMENTO", "-", "-",
			"-", "-", "-",
			valor(sup.Valor), valor(sup.Valor),
			"-", "-", "-", "-", "-",
			sup.Motivo,
			ouTraco(sup.Observacao),
			"-",
		})
	}

	return linhas
}

func escreverCSV(linhas [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(bomUTF8)
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(linhas); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GET /api/export/csv/caixa/:id — log unificado de movimentos de um caixa.
func ExportCSVCaixaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.Claims(c)
		if err != nil {
			return err
		}
		id, _ := c.ParamsInt("id")

		cx, err := caixa.Carregar(uint(id))
		if err != nil {
			return err
		}
		if !podeExportar(claims, cx) {
			return fiber.NewError(fiber.StatusForbidden, "Você não tem permissão para exportar este caixa!")
		}

		conteudo, err := escreverCSV(LinhasMovimentosCaixa(cx))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao gerar o CSV: "+err.Error())
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename=caixa_%d_movimentos.csv`, cx.ID))
		return c.Send(conteudo)
	}
}

// GET /api/export/csv/caixas — resumo de todos os caixas, uma linha por caixa.
func ExportCSVTodosCaixasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var caixas []models.Caixa
		if err := database.DB.
			Preload("Operador").
			Preload("Vendas.Pagamentos.FormaPagamento").
			Preload("Deliveries.Pagamentos.FormaPagamento").
			Preload("Despesas").
			Preload("Sangrias").
			Preload("Suprimentos").
			Order("data desc").
			Find(&caixas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar os caixas")
		}

		linhas := [][]string{{
			"ID", "Data", "Turno", "Operador", "Status", "Saldo Inicial", "Saldo Final",
			"Total Vendas", "Total Despesas", "Total Sangrias", "Hora Abertura", "Hora Fechamento",
		}}
		for i := range caixas {
			cx := &caixas[i]
			totais := report.CalcularTotaisCaixa(cx)
			fechamento := ""
			if cx.HoraFechamento != nil {
				fechamento = cx.HoraFechamento.Format("15:04:05")
			}
			linhas = append(linhas, []string{
				fmt.Sprintf("%d", cx.ID),
				cx.Data.Format("02/01/2006"),
				cx.Turno,
				cx.Operador.Nome,
				string(cx.Status),
				valor(cx.SaldoInicial),
				valor(cx.SaldoFinal),
				valor(totais.TotalVendas),
				valor(totais.Despesas),
				valor(totais.Sangrias),
				cx.HoraAbertura.Format("15:04:05"),
				fechamento,
			})
		}

		conteudo, err := escreverCSV(linhas)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao gerar o CSV: "+err.Error())
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename=todos_caixas.csv`)
		return c.Send(conteudo)
	}
}
