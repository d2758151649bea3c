package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	BackupPath  string // pasta onde ficam os arquivos de backup enviados
}

func Load() *Config {
	// .env é opcional, só para desenvolvimento local
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=caixapro port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		BackupPath:  getEnv("BACKUP_PATH", "./backups"),
	}

	// Checagens de segurança para produção
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET não definido! Obrigatório para rodar o servidor.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET deve ter no mínimo 32 caracteres!")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=caixapro port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN usando valor padrão, defina a sua conexão Postgres em produção.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
