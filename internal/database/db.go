package database

import (
	"log"

	"github.com/DiegoBrito17/caixapro/internal/config"
	"github.com/DiegoBrito17/caixapro/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Não foi possível conectar ao banco: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Usuario{},
		&models.Caixa{},
		&models.FormaPagamento{},
		&models.BandeiraCartao{},
		&models.CategoriaDespesa{},
		&models.Motoboy{},
		&models.Venda{},
		&models.PagamentoVenda{},
		&models.Delivery{},
		&models.PagamentoDelivery{},
		&models.Despesa{},
		&models.Sangria{},
		&models.Suprimento{},
		&models.Produto{},
		&models.MovimentacaoEstoque{},
		&models.Licenca{},
		&models.Dispositivo{},
		&models.Backup{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Erro no AutoMigrate: %v", err)
	}

	Seed()

	log.Println("Banco conectado. Migration concluída.")
}
