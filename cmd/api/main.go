package main

import (
	"log"

	"kiosk/internal/config"
	"kiosk/internal/domain/model"
	"kiosk/internal/handler"
	"kiosk/internal/infra/db"
	"kiosk/internal/infra/notification"
	infraRepo "kiosk/internal/infra/repository"
	"kiosk/internal/server"
	"kiosk/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envはあれば読む（本番は環境変数だけで動く）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.StockTransaction{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	ledgerRepo := infraRepo.NewTransactionGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//通知チャネル（URL未設定なら黙ってスキップ）
	notifier := notification.NewDiscordNotifier(cfg.DiscordWebhookURL)

	//Usecase生成
	purchaseUC := usecase.NewPurchaseUsecase(txManager, notifier)
	amendUC := usecase.NewAmendUsecase(txManager)
	transactionUC := usecase.NewTransactionUsecase(ledgerRepo)
	productUC := usecase.NewProductUsecase(productRepo, txManager, cfg.DefaultAlertThreshold)
	userUC := usecase.NewUserUsecase(userRepo)
	restockUC := usecase.NewRestockImportUsecase(txManager)
	authUC := usecase.NewAuthUsecase(cfg.AdminPasswordHash, cfg.AdminJWTSecret)

	//Handler生成
	h := server.Handlers{
		Auth:        handler.NewAuthHandler(authUC),
		Purchase:    handler.NewPurchaseHandler(purchaseUC),
		Transaction: handler.NewTransactionHandler(transactionUC, amendUC),
		Product:     handler.NewProductHandler(productUC),
		User:        handler.NewUserHandler(userUC),
		Restock:     handler.NewRestockHandler(restockUC),
	}

	//Server起動
	e := server.New()
	server.RegisterRoutes(e, h, cfg.AdminJWTSecret)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
