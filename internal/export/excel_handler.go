package export

import (
	"bytes"
	"fmt"

	"github.com/DiegoBrito17/caixapro/internal/auth"
	"github.com/DiegoBrito17/caixapro/internal/caixa"
	"github.com/DiegoBrito17/caixapro/internal/models"
	"github.com/DiegoBrito17/caixapro/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const formatoMoeda = `"R$"#,##0.00`

// GET /api/export/excel/caixa/:id — planilha com uma aba por tipo de movimento.
func ExportExcelCaixaHandler() fiber.Handler {
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

		buf, err := gerarExcelCaixa(cx)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao gerar a planilha: "+err.Error())
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename=caixa_%d_%s.xlsx`, cx.ID, cx.Data.Format("2006-01-02")))
		return c.Send(buf.Bytes())
	}
}

func gerarExcelCaixa(cx *models.Caixa) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	estiloCabecalho, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	estiloMoeda, err := f.NewStyle(&excelize.Style{CustomNumFmt: ptr(formatoMoeda)})
	if err != nil {
		return nil, err
	}

	if err := montarAbaInfo(f, cx, estiloCabecalho); err != nil {
		return nil, err
	}
	if err := montarAbaVendas(f, cx, estiloCabecalho, estiloMoeda); err != nil {
		return nil, err
	}
	if err := montarAbaDeliveries(f, cx, estiloCabecalho, estiloMoeda); err != nil {
		return nil, err
	}
	if err := montarAbaDespesas(f, cx, estiloCabecalho, estiloMoeda); err != nil {
		return nil, err
	}
	if err := montarAbaMovimentacoes(f, cx, estiloCabecalho, estiloMoeda); err != nil {
		return nil, err
	}
	if err := montarAbaResumo(f, cx, estiloCabecalho, estiloMoeda); err != nil {
		return nil, err
	}

	// A aba default do excelize vira a de informações
	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

func ptr(s string) *string { return &s }

func cabecalho(f *excelize.File, aba string, estilo int, titulos []string) error {
	for i, titulo := range titulos {
		cel, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(aba, cel, titulo); err != nil {
			return err
		}
		if err := f.SetCellStyle(aba, cel, cel, estilo); err != nil {
			return err
		}
	}
	return nil
}

func montarAbaInfo(f *excelize.File, cx *models.Caixa, estiloCabecalho int) error {
	const aba = "Informações"
	if _, err := f.NewSheet(aba); err != nil {
		return err
	}
	f.SetColWidth(aba, "A", "A", 20)
	f.SetColWidth(aba, "B", "B", 30)

	fechamento := "-"
	if cx.HoraFechamento != nil {
		fechamento = cx.HoraFechamento.Format("15:04:05")
	}

	linhas := [][2]interface{}{
		{"Caixa", cx.ID},
		{"Data", cx.Data.Format("02/01/2006")},
		{"Turno", cx.Turno},
		{"Operador", cx.Operador.Nome},
		{"Status", string(cx.Status)},
		{"Saldo Inicial", cx.SaldoInicial},
		{"Hora Abertura", cx.HoraAbertura.Format("15:04:05")},
		{"Hora Fechamento", fechamento},
	}
	for i, linha := range linhas {
		celA := fmt.Sprintf("A%d", i+1)
		celB := fmt.Sprintf("B%d", i+1)
		if err := f.SetCellValue(aba, celA, linha[0]); err != nil {
			return err
		}
		if err := f.SetCellStyle(aba, celA, celA, estiloCabecalho); err != nil {
			return err
		}
		if err := f.SetCellValue(aba, celB, linha[1]); err != nil {
			return err
		}
	}
	return nil
}

func montarAbaVendas(f *excelize.File, cx *models.Caixa, estiloCabecalho, estiloMoeda int) error {
	const aba = "Vendas"
	if _, err := f.NewSheet(aba); err != nil {
		return err
	}
	if err := cabecalho(f, aba, estiloCabecalho,
		[]string{"ID", "Data", "Hora", "Tipo", "Número", "Total", "Forma Pagamento", "Nota", "Observação"}); err != nil {
		return err
	}
	f.SetColWidth(aba, "A", "I", 14)
	f.SetColWidth(aba, "I", "I", 30)

	linha := 2
	for _, venda := range cx.Vendas {
		for _, pag := range venda.Pagamentos {
			forma := "-"
			if pag.FormaPagamento != nil {
				forma = pag.FormaPagamento.Nome
			}
			f.SetCellValue(aba, fmt.Sprintf("A%d", linha), venda.ID)
			f.SetCellValue(aba, fmt.Sprintf("B%d", linha), venda.DataHora.Format("02/01/2006"))
			f.SetCellValue(aba, fmt.Sprintf("C%d", linha), venda.DataHora.Format("15:04:05"))
			f.SetCellValue(aba, fmt.Sprintf("D%d", linha), string(venda.Tipo))
			f.SetCellValue(aba, fmt.Sprintf("E%d", linha), venda.Numero)
			f.SetCellValue(aba, fmt.Sprintf("F%d", linha), pag.Valor)
			f.SetCellStyle(aba, fmt.Sprintf("F%d", linha), fmt.Sprintf("F%d", linha), estiloMoeda)
			f.SetCellValue(aba, fmt.Sprintf("G%d", linha), forma)
			f.SetCellValue(aba, fmt.Sprintf("H%d", linha), simNao(venda.EmitiuNota))
			f.SetCellValue(aba, fmt.Sprintf("I%d", linha), venda.Observacao)
			linha++
		}
	}
	return nil
}

func montarAbaDeliveries(f *excelize.File, cx *models.Caixa, estiloCabecalho, estiloMoeda int) error {
	const aba = "Deliveries"
	if _, err := f.NewSheet(aba); err != nil {
		return err
	}
	if err := cabecalho(f, aba, estiloCabecalho,
		[]string{"ID", "Data", "Hora", "Cliente", "Total", "Taxa Entrega", "Motoboy", "Forma Pagamento", "Nota", "Observação"}); err != nil {
		return err
	}
	f.SetColWidth(aba, "A", "J", 14)
	f.SetColWidth(aba, "D", "D", 25)
	f.SetColWidth(aba, "J", "J", 30)

	linha := 2
	for _, del := range cx.Deliveries {
		for _, pag := range del.Pagamentos {
			forma := "-"
			if pag.FormaPagamento != nil {
				forma = pag.FormaPagamento.Nome
			}
			motoboy := "-"
			if del.Motoboy != nil {
				motoboy = del.Motoboy.Nome
			}
			f.SetCellValue(aba, fmt.Sprintf("A%d", linha), del.ID)
			f.SetCellValue(aba, fmt.Sprintf("B%d", linha), del.DataHora.Format("02/01/2006"))
			f.SetCellValue(aba, fmt.Sprintf("C%d", linha), del.DataHora.Format("15:04:05"))
			f.SetCellValue(aba, fmt.Sprintf("D%d", linha), del.Cliente)
			f.SetCellValue(aba, fmt.Sprintf("E%d", linha), pag.Valor)
			f.SetCellStyle(aba, fmt.Sprintf("E%d", linha), fmt.Sprintf("E%d", linha), estiloMoeda)
			f.SetCellValue(aba, fmt.Sprintf("F%d", linha), del.TaxaEntrega)
			f.SetCellStyle(aba, fmt.Sprintf("F%d", linha), fmt.Sprintf("F%d", linha), estiloMoeda)
			f.SetCellValue(aba, fmt.Sprintf("G%d", linha), motoboy)
			f.SetCellValue(aba, fmt.Sprintf("H%d", linha), forma)
			f.SetCellValue(aba, fmt.Sprintf("I%d", linha), simNao(del.EmitiuNota))
			f.SetCellValue(aba, fmt.Sprintf("J%d", linha), del.Observacao)
			linha++
		}
	}
	return nil
}

func montarAbaDespesas(f *excelize.File, cx *models.Caixa, estiloCabecalho, estiloMoeda int) error {
	const aba = "Despesas"
	if _, err := f.NewSheet(aba); err != nil {
		return err
	}
	if err := cabecalho(f, aba, estiloCabecalho,
		[]string{"ID", "Data", "Hora", "Tipo", "Categoria", "Descrição", "Valor", "Forma Pagamento", "Observação"}); err != nil {
		return err
	}
	f.SetColWidth(aba, "A", "I", 14)
	f.SetColWidth(aba, "F", "F", 40)
	f.SetColWidth(aba, "I", "I", 30)

	for i, despesa := range cx.Despesas {
		linha := i + 2
		categoria := "-"
		if despesa.Categoria != nil {
			categoria = despesa.Categoria.Nome
		}
		forma := "-"
		if despesa.FormaPagamento != nil {
			forma = despesa.FormaPagamento.Nome
		}
		f.SetCellValue(aba, fmt.Sprintf("A%d", linha), despesa.ID)
		f.SetCellValue(aba, fmt.Sprintf("B%d", linha), despesa.DataHora.Format("02/01/2006"))
		f.SetCellValue(aba, fmt.Sprintf("C%d", linha), despesa.DataHora.Format("15:04:05"))
		f.SetCellValue(aba, fmt.Sprintf("D%d", linha), string(despesa.Tipo))
		f.SetCellValue(aba, fmt.Sprintf("E%d", linha), categoria)
		f.SetCellValue(aba, fmt.Sprintf("F%d", linha), despesa.Descricao)
		f.SetCellValue(aba, fmt.Sprintf("G%d", linha), despesa.Valor)
		f.SetCellStyle(aba, fmt.Sprintf("G%d", linha), fmt.Sprintf("G%d", linha), estiloMoeda)
		f.SetCellValue(aba, fmt.Sprintf("H%d", linha), forma)
		f.SetCellValue(aba, fmt.Sprintf("I%d", linha), despesa.Observacao)
	}
	return nil
}

func montarAbaMovimentacoes(f *excelize.File, cx *models.Caixa, estiloCabecalho, estiloMoeda int) error {
	const aba = "Movimentações"
	if _, err := f.NewSheet(aba); err != nil {
		return err
	}
	if err := cabecalho(f, aba, estiloCabecalho,
		[]string{"ID", "Data", "Hora", "Tipo", "Valor", "Motivo", "Observação"}); err != nil {
		return err
	}
	f.SetColWidth(aba, "A", "G", 14)
	f.SetColWidth(aba, "F", "F", 30)
	f.SetColWidth(aba, "G", "G", 40)

	linha := 2
	for _, sangria := range cx.Sangrias {
		f.SetCellValue(aba, fmt.Sprintf("A%d", linha), sangria.ID)
		f.SetCellValue(aba, fmt.Sprintf("B%d", linha), sangria.DataHora.Format("02/01/2006"))
		f.SetCellValue(aba, fmt.Sprintf("C%d", linha), sangria.DataHora.Format("15:04:05"))
		f.SetCellValue(aba, fmt.Sprintf("D%d", linha), "SANGRIA")
		f.SetCellValue(aba, fmt.Sprintf("E%d", linha), -sangria.Valor)
		f.SetCellStyle(aba, fmt.Sprintf("E%d", linha), fmt.Sprintf("E%d", linha), estiloMoeda)
		f.SetCellValue(aba, fmt.Sprintf("F%d", linha), sangria.Motivo)
		f.SetCellValue(aba, fmt.Sprintf("G%d", linha), sangria.Observacao)
		linha++
	}
	for _, sup := range cx.Suprimentos {
		f.SetCellValue(aba, fmt.Sprintf("A%d", linha), sup.ID)
		f.SetCellValue(aba, fmt.Sprintf("B%d", linha), sup.DataHora.Format("02/01/2006"))
		f.SetCellValue(aba, fmt.Sprintf("C%d", linha), sup.DataHora.Format("15:04:05"))
		f.SetCellValue(aba, fmt.Sprintf("D%d", linha), "SUPRIMENTO")
		f.SetCellValue(aba, fmt.Sprintf("E%d", linha), sup.Valor)
		f.SetCellStyle(aba, fmt.Sprintf("E%d", linha), fmt.Sprintf("E%d", linha), estiloMoeda)
		f.SetCellValue(aba, fmt.Sprintf("F%d", linha), sup.Motivo)
		f.SetCellValue(aba, fmt.Sprintf("G%d", linha), sup.Observacao)
		linha++
	}
	return nil
}

func montarAbaResumo(f *excelize.File, cx *models.Caixa, estiloCabecalho, estiloMoeda int) error {
	const aba = "Resumo"
	if _, err := f.NewSheet(aba); err != nil {
		return err
	}
	f.SetColWidth(aba, "A", "A", 30)
	f.SetColWidth(aba, "B", "B", 18)

	totais := report.CalcularTotaisFechamento(cx)
	linhas := []struct {
		rotulo string
		valor  float64
	}{
		{"Vendas Loja", totais.VendasLoja},
		{"Vendas Delivery", totais.VendasDelivery},
		{"Total Vendas", totais.TotalVendas},
		{"Dinheiro", totais.Dinheiro},
		{"Crédito", totais.Credito},
		{"Débito", totais.Debito},
		{"PIX", totais.Pix},
		{"Online", totais.Online},
		{"Notas Fiscais", totais.NotasFiscais},
		{"Despesas Fixas", totais.DespesasFixas},
		{"Despesas Variáveis", totais.DespesasVariaveis},
		{"Saídas", totais.DespesasSaidas},
		{"Total Despesas", totais.Despesas},
		{"Sangrias", totais.Sangrias},
		{"Suprimentos", totais.Suprimentos},
		{"Saldo Inicial", cx.SaldoInicial},
		{"Saldo Final", totais.SaldoFinal},
	}
	for i, l := range linhas {
		celA := fmt.Sprintf("A%d", i+1)
		celB := fmt.Sprintf("B%d", i+1)
		f.SetCellValue(aba, celA, l.rotulo)
		f.SetCellStyle(aba, celA, celA, estiloCabecalho)
		f.SetCellValue(aba, celB, l.valor)
		f.SetCellStyle(aba, celB, celB, estiloMoeda)
	}
	return nil
}
