package main

import (
	"log"
	"strings"

	"github.com/DiegoBrito17/caixapro/internal/admin"
	"github.com/DiegoBrito17/caixapro/internal/audit"
	"github.com/DiegoBrito17/caixapro/internal/auth"
	"github.com/DiegoBrito17/caixapro/internal/caixa"
	"github.com/DiegoBrito17/caixapro/internal/cashflow"
	"github.com/DiegoBrito17/caixapro/internal/config"
	"github.com/DiegoBrito17/caixapro/internal/dashboard"
	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/delivery"
	"github.com/DiegoBrito17/caixapro/internal/despesa"
	"github.com/DiegoBrito17/caixapro/internal/estoque"
	"github.com/DiegoBrito17/caixapro/internal/export"
	"github.com/DiegoBrito17/caixapro/internal/licenca"
	"github.com/DiegoBrito17/caixapro/internal/models"
	"github.com/DiegoBrito17/caixapro/internal/venda"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro inesperado no servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Rotas públicas
	api.Post("/ativacao", licenca.AtivacaoHandler())
	api.Post("/auth/register-master", auth.RegisterMasterHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Tudo abaixo exige token
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Cadastros de apoio (leitura liberada para qualquer usuário logado)
	protected.Get("/formas-pagamento", admin.ListFormasPagamentoHandler())
	protected.Get("/bandeiras", admin.ListBandeirasHandler())
	protected.Get("/motoboys", admin.ListMotoboysHandler())
	protected.Get("/categorias", despesa.ListCategoriasHandler())

	// Operações do caixa da sessão
	operacional := protected.Group("")
	operacional.Use(auth.RequireCaixa())

	operacional.Post("/vendas", venda.CreateVendaHandler())
	operacional.Get("/vendas", venda.ListVendasHandler())

	operacional.Post("/deliveries", delivery.CreateDeliveryHandler())
	operacional.Get("/deliveries", delivery.ListDeliveriesHandler())

	operacional.Post("/despesas", despesa.CreateDespesaHandler())
	operacional.Get("/despesas", despesa.ListDespesasHandler())

	operacional.Post("/sangrias", cashflow.CreateSangriaHandler())
	operacional.Get("/sangrias", cashflow.ListSangriasHandler())
	operacional.Post("/suprimentos", cashflow.CreateSuprimentoHandler())
	operacional.Get("/suprimentos", cashflow.ListSuprimentosHandler())

	operacional.Get("/fechamento/preview", caixa.FechamentoPreviewHandler())
	operacional.Post("/fechamento/confirmar", caixa.ConfirmarFechamentoHandler())

	// Dashboard (capability)
	dashboardRoutes := protected.Group("/dashboard")
	dashboardRoutes.Use(auth.RequireAcesso(auth.AcessoDashboard))
	dashboardRoutes.Get("/", dashboard.DashboardHandler())

	// Relatórios e exportações
	relatorios := protected.Group("")
	relatorios.Use(auth.RequireAcesso(auth.AcessoRelatorios))
	relatorios.Get("/relatorios/diario", caixa.RelatorioDiarioHandler())
	relatorios.Get("/relatorios/fechamento/:id", export.RelatorioFechamentoHandler())
	relatorios.Get("/export/csv/caixa/:id", export.ExportCSVCaixaHandler())
	relatorios.Get("/export/csv/caixas", export.ExportCSVTodosCaixasHandler())
	relatorios.Get("/export/excel/caixa/:id", export.ExportExcelCaixaHandler())
	relatorios.Get("/export/pdf/caixa/:id", export.ExportPDFCaixaHandler())

	// Estoque (capability de configurações, como as demais telas de gestão)
	estoqueRoutes := protected.Group("/estoque")
	estoqueRoutes.Use(auth.RequireAcesso(auth.AcessoConfiguracoes))
	estoqueRoutes.Get("/produtos", estoque.ListProdutosHandler())
	estoqueRoutes.Post("/produtos", estoque.CreateProdutoHandler())
	estoqueRoutes.Put("/produtos/:id", estoque.EditarProdutoHandler())
	estoqueRoutes.Put("/produtos/:id/toggle", estoque.ToggleProdutoHandler())
	estoqueRoutes.Post("/movimentacoes", estoque.CreateMovimentacaoHandler())
	estoqueRoutes.Get("/movimentacoes", estoque.ListMovimentacoesHandler())
	estoqueRoutes.Get("/resumo", estoque.ResumoEstoqueHandler())

	// Administração (ADMIN e MASTER)
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequirePerfil(models.PerfilAdmin, models.PerfilMaster))

	adminRoutes.Get("/caixas", caixa.ListCaixasHandler())
	adminRoutes.Get("/caixas/:id", caixa.GetCaixaHandler())
	adminRoutes.Put("/caixas/:id", caixa.EditarCaixaHandler())
	adminRoutes.Put("/caixas/:id/reabrir", caixa.ReabrirCaixaHandler())
	adminRoutes.Put("/caixas/:id/fechar", caixa.FecharForcadoHandler())
	adminRoutes.Delete("/caixas/:id", caixa.ExcluirCaixaCompletoHandler())

	adminRoutes.Put("/vendas/:id", venda.EditarVendaHandler())
	adminRoutes.Delete("/vendas/:id", venda.DeletarVendaHandler())
	adminRoutes.Put("/deliveries/:id", delivery.EditarDeliveryHandler())
	adminRoutes.Delete("/deliveries/:id", delivery.DeletarDeliveryHandler())
	adminRoutes.Put("/despesas/:id", despesa.EditarDespesaHandler())
	adminRoutes.Delete("/despesas/:id", despesa.DeletarDespesaHandler())
	adminRoutes.Put("/sangrias/:id", cashflow.EditarSangriaHandler())
	adminRoutes.Delete("/sangrias/:id", cashflow.DeletarSangriaHandler())
	adminRoutes.Put("/suprimentos/:id", cashflow.EditarSuprimentoHandler())
	adminRoutes.Delete("/suprimentos/:id", cashflow.DeletarSuprimentoHandler())

	adminRoutes.Get("/usuarios", admin.ListUsuariosHandler())
	adminRoutes.Post("/usuarios", admin.CreateUsuarioHandler())
	adminRoutes.Put("/usuarios/:id", admin.EditarUsuarioHandler())
	adminRoutes.Put("/usuarios/:id/senha", admin.EditarSenhaHandler())
	adminRoutes.Put("/usuarios/:id/toggle", admin.ToggleUsuarioHandler())
	adminRoutes.Delete("/usuarios/:id", admin.DeletarUsuarioHandler())

	adminRoutes.Post("/formas-pagamento", admin.CreateFormaPagamentoHandler())
	adminRoutes.Put("/formas-pagamento/:id", admin.EditarFormaPagamentoHandler())
	adminRoutes.Put("/formas-pagamento/:id/toggle", admin.ToggleFormaPagamentoHandler())
	adminRoutes.Delete("/formas-pagamento/:id", admin.DeletarFormaPagamentoHandler())

	adminRoutes.Post("/bandeiras", admin.CreateBandeiraHandler())
	adminRoutes.Put("/bandeiras/:id", admin.EditarBandeiraHandler())
	adminRoutes.Put("/bandeiras/:id/toggle", admin.ToggleBandeiraHandler())
	adminRoutes.Delete("/bandeiras/:id", admin.DeletarBandeiraHandler())

	adminRoutes.Post("/motoboys", admin.CreateMotoboyHandler())
	adminRoutes.Put("/motoboys/:id", admin.EditarMotoboyHandler())
	adminRoutes.Put("/motoboys/:id/toggle", admin.ToggleMotoboyHandler())
	adminRoutes.Delete("/motoboys/:id", admin.DeletarMotoboyHandler())

	adminRoutes.Post("/categorias", despesa.CreateCategoriaHandler())
	adminRoutes.Put("/categorias/:id", despesa.EditarCategoriaHandler())
	adminRoutes.Put("/categorias/:id/toggle", despesa.ToggleCategoriaHandler())
	adminRoutes.Delete("/categorias/:id", despesa.DeletarCategoriaHandler())

	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Licenciamento e backups (apenas MASTER)
	masterRoutes := protected.Group("/master")
	masterRoutes.Use(auth.RequirePerfil(models.PerfilMaster))

	masterRoutes.Get("/licencas", licenca.ListLicencasHandler())
	masterRoutes.Post("/licencas/:id/nova-chave", licenca.GerarNovaChaveHandler())
	masterRoutes.Put("/licencas/:id/toggle", licenca.ToggleLicencaHandler())
	masterRoutes.Delete("/licencas/:id", licenca.DeletarLicencaHandler())

	masterRoutes.Get("/dispositivos", licenca.ListDispositivosHandler())
	masterRoutes.Put("/dispositivos/bloquear-todos", licenca.BloquearTodosDispositivosHandler())
	masterRoutes.Put("/dispositivos/:id/bloquear", licenca.BloquearDispositivoHandler())
	masterRoutes.Put("/dispositivos/:id/desbloquear", licenca.DesbloquearDispositivoHandler())
	masterRoutes.Delete("/dispositivos/:id", licenca.DeletarDispositivoHandler())

	masterRoutes.Get("/backups", licenca.ListBackupsHandler())
	masterRoutes.Post("/backups", licenca.UploadBackupHandler(cfg))
	masterRoutes.Get("/backups/:id/download", licenca.DownloadBackupHandler(cfg))
	masterRoutes.Delete("/backups/:id", licenca.DeletarBackupHandler(cfg))

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
