package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"inventory-system/internal/repositories"
	"inventory-system/internal/routes"
	"inventory-system/pkg/config"
	"inventory-system/pkg/database/postgresql"
	applogger "inventory-system/pkg/logger"
	"inventory-system/pkg/service"
	"inventory-system/seeders"
)

func main() {
	runAdmin := flag.Bool("admin", false, "Criar o administrador padrão")
	runEquipment := flag.Bool("equipment", false, "Cadastrar o conjunto inicial de equipamentos")
	runAll := flag.Bool("all", false, "Executar todos os seeders (equivale a -admin -equipment)")
	flag.Parse()

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Logger)
	defer logger.Sync()

	if !*runAdmin && !*runEquipment && !*runAll {
		logger.Warn("nenhum seeder selecionado, use -admin, -equipment ou -all")
		flag.PrintDefaults()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("não foi possível conectar ao PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(dbPool, logger); err != nil {
		logger.Fatal("erro ao aplicar migrações", zap.Error(err))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
	cacheRepo := repositories.NewMemoryCacheRepository(cfg.Auth.LockoutDuration, 10*time.Minute)
	svc := routes.NewServices(dbPool, cacheRepo, jwtSvc, logger, cfg)

	if *runAll || *runAdmin {
		if err := seeders.SeedAdmin(ctx, svc.Auth, cfg, logger); err != nil {
			logger.Fatal("erro ao criar administrador", zap.Error(err))
		}
	}

	if *runAll || *runEquipment {
		if _, err := seeders.SeedEquipments(ctx, svc.Equipment, logger); err != nil {
			logger.Fatal("erro ao cadastrar equipamentos", zap.Error(err))
		}
	}

	logger.Info("seed concluído")
}
