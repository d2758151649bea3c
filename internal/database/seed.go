package database

import (
	"log"

	"github.com/DiegoBrito17/caixapro/internal/models"

	"golang.org/x/crypto/bcrypt"
)

var formasPadrao = []string{
	"Dinheiro", "Crédito", "Débito", "PIX", "Cartão (Voucher)",
	"Conta Assinada", "PG Online", "Link de Pagamento",
	"Transferência", "Depósito", "Boleto", "Cheque",
	"Vale Refeição", "Vale Alimentação", "Cortesia",
}

var bandeirasPadrao = []string{
	"Visa", "Mastercard", "Elo", "American Express",
	"Hipercard", "Diners Club", "Discover", "Aura",
	"Cabal", "Banescard", "Good Card", "Sodexo",
	"Ticket", "VR", "Alelo",
}

var categoriasPadrao = []models.CategoriaDespesa{
	{Nome: "Aluguel", Tipo: models.DespesaFixa},
	{Nome: "Condomínio", Tipo: models.DespesaFixa},
	{Nome: "Água", Tipo: models.DespesaFixa},
	{Nome: "Luz", Tipo: models.DespesaFixa},
	{Nome: "Internet", Tipo: models.DespesaFixa},
	{Nome: "Telefonia", Tipo: models.DespesaFixa},
	{Nome: "Contabilidade", Tipo: models.DespesaFixa},
	{Nome: "Sistema/Software", Tipo: models.DespesaFixa},
	{Nome: "Produtos", Tipo: models.DespesaVariavel},
	{Nome: "Embalagens", Tipo: models.DespesaVariavel},
	{Nome: "Gás", Tipo: models.DespesaVariavel},
	{Nome: "Manutenção", Tipo: models.DespesaVariavel},
	{Nome: "Limpeza", Tipo: models.DespesaVariavel},
	{Nome: "Marketing", Tipo: models.DespesaVariavel},
	{Nome: "Fretado/Entrega", Tipo: models.DespesaVariavel},
	{Nome: "Comissão Motoboy", Tipo: models.DespesaVariavel},
	{Nome: "Taxas Cartão", Tipo: models.DespesaSaida},
	{Nome: "Taxas Plataforma", Tipo: models.DespesaSaida},
	{Nome: "Impostos", Tipo: models.DespesaSaida},
	{Nome: "Passagem", Tipo: models.DespesaSaida},
	{Nome: "Multas", Tipo: models.DespesaSaida},
	{Nome: "Outros", Tipo: models.DespesaSaida},
}

// Seed cria os cadastros padrão e o usuário MASTER no primeiro boot.
// É idempotente: registros já existentes não são duplicados.
func Seed() {
	var count int64
	DB.Model(&models.Usuario{}).Where("perfil = ?", models.PerfilMaster).Count(&count)
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("SUPORTE26@"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Seed: não foi possível gerar hash do MASTER: %v", err)
		} else {
			master := models.Usuario{
				Nome:                "ADMIN MASTER",
				SenhaHash:           string(hash),
				Perfil:              models.PerfilMaster,
				AcessoDashboard:     true,
				AcessoConfiguracoes: true,
				AcessoRelatorios:    true,
				Ativo:               true,
			}
			if err := DB.Create(&master).Error; err != nil {
				log.Printf("Seed: erro criando ADMIN MASTER: %v", err)
			} else {
				log.Println("Seed: usuário ADMIN MASTER criado (troque a senha!)")
			}
		}
	}

	for _, nome := range formasPadrao {
		DB.Where(models.FormaPagamento{Nome: nome}).
			FirstOrCreate(&models.FormaPagamento{Nome: nome, Ativo: true})
	}

	for _, nome := range bandeirasPadrao {
		DB.Where(models.BandeiraCartao{Nome: nome}).
			FirstOrCreate(&models.BandeiraCartao{Nome: nome, Ativo: true})
	}

	for _, cat := range categoriasPadrao {
		DB.Where(models.CategoriaDespesa{Nome: cat.Nome}).
			FirstOrCreate(&models.CategoriaDespesa{Nome: cat.Nome, Tipo: cat.Tipo, Ativo: true})
	}
}
