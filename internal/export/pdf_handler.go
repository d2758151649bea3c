package export

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/DiegoBrito17/caixapro/internal/auth"
	"github.com/DiegoBrito17/caixapro/internal/caixa"
	"github.com/DiegoBrito17/caixapro/internal/models"
	"github.com/DiegoBrito17/caixapro/internal/report"

	"github.com/go-pdf/fpdf"
	"github.com/gofiber/fiber/v2"
)

// GET /api/export/pdf/caixa/:id — relatório de fechamento em PDF. Se a geração
// falhar, responde o relatório imprimível em HTML com um aviso no topo.
func ExportPDFCaixaHandler() fiber.Handler {
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

		conteudo, err := gerarPDFCaixa(cx)
		if err != nil {
			log.Printf("PDF do caixa %d falhou, caindo para HTML: %v", cx.ID, err)
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.SendString(relatorioHTML(cx, true))
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename=fechamento_caixa_%d.pdf`, cx.ID))
		return c.Send(conteudo)
	}
}

// GET /api/relatorios/fechamento/:id — versão JSON do relatório de fechamento.
func RelatorioFechamentoHandler() fiber.Handler {
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
			return fiber.NewError(fiber.StatusForbidden, "Você não tem permissão para ver este relatório!")
		}

		return c.JSON(fiber.Map{
			"caixa": fiber.Map{
				"id":       cx.ID,
				"data":     cx.Data.Format("2006-01-02"),
				"turno":    cx.Turno,
				"operador": cx.Operador.Nome,
				"status":   cx.Status,
			},
			"totais": report.CalcularTotaisFechamento(cx),
		})
	}
}

func gerarPDFCaixa(cx *models.Caixa) ([]byte, error) {
	totais := report.CalcularTotaisFechamento(cx)

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Relatório de Fechamento de Caixa"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Caixa #%d — %s — %s", cx.ID, cx.Data.Format("02/01/2006"), cx.Turno)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, tr("Operador: "+cx.Operador.Nome), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	linha := func(rotulo string, valor float64, negrito bool) {
		estilo := ""
		if negrito {
			estilo = "B"
		}
		pdf.SetFont("Helvetica", estilo, 11)
		pdf.CellFormat(120, 8, tr(rotulo), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, tr(fmt.Sprintf("R$ %.2f", valor)), "1", 1, "R", false, 0, "")
	}

	linha("Saldo Inicial", cx.SaldoInicial, false)
	linha("Vendas Loja", totais.VendasLoja, false)
	linha("Vendas Delivery", totais.VendasDelivery, false)
	linha("Total de Vendas", totais.TotalVendas, true)
	linha("Dinheiro", totais.Dinheiro, false)
	linha("Crédito", totais.Credito, false)
	linha("Débito", totais.Debito, false)
	linha("PIX", totais.Pix, false)
	linha("Online", totais.Online, false)
	linha("Notas Fiscais", totais.NotasFiscais, false)
	linha("Despesas Fixas", totais.DespesasFixas, false)
	linha("Despesas Variáveis", totais.DespesasVariaveis, false)
	linha("Saídas", totais.DespesasSaidas, false)
	linha("Total de Despesas", totais.Despesas, true)
	linha("Sangrias", totais.Sangrias, false)
	linha("Suprimentos", totais.Suprimentos, false)
	linha("Saldo Final", totais.SaldoFinal, true)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	horario := cx.HoraAbertura.Format("15:04:05")
	if cx.HoraFechamento != nil {
		horario += " - " + cx.HoraFechamento.Format("15:04:05")
	}
	pdf.CellFormat(0, 6, tr("Período: "+horario), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// relatorioHTML renderiza o fechamento em HTML imprimível. É o fallback do
// PDF e também serve a página de impressão do navegador.
func relatorioHTML(cx *models.Caixa, comAviso bool) string {
	totais := report.CalcularTotaisFechamento(cx)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html lang=\"pt-BR\"><head><meta charset=\"utf-8\">")
	b.WriteString("<title>Fechamento de Caixa</title></head><body>")
	if comAviso {
		b.WriteString("<p><strong>Aviso:</strong> não foi possível gerar o PDF; exibindo a versão imprimível.</p>")
	}
	b.WriteString(fmt.Sprintf("<h1>Fechamento de Caixa #%d</h1>", cx.ID))
	b.WriteString(fmt.Sprintf("<p>%s — %s — Operador: %s</p>",
		cx.Data.Format("02/01/2006"), cx.Turno, cx.Operador.Nome))
	b.WriteString("<table border=\"1\" cellpadding=\"4\" cellspacing=\"0\">")

	linha := func(rotulo string, valor float64) {
		b.WriteString(fmt.Sprintf("<tr><td>%s</td><td align=\"right\">R$ %.2f</td></tr>", rotulo, valor))
	}
	linha("Saldo Inicial", cx.SaldoInicial)
	linha("Vendas Loja", totais.VendasLoja)
	linha("Vendas Delivery", totais.VendasDelivery)
	linha("Total de Vendas", totais.TotalVendas)
	linha("Dinheiro", totais.Dinheiro)
	linha("Crédito", totais.Credito)
	linha("Débito", totais.Debito)
	linha("PIX", totais.Pix)
	linha("Online", totais.Online)
	linha("Total de Despesas", totais.Despesas)
	linha("Sangrias", totais.Sangrias)
	linha("Suprimentos", totais.Suprimentos)
	linha("Saldo Final", totais.SaldoFinal)

	b.WriteString("</table></body></html>")
	return b.String()
}
