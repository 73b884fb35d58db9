package main

import (
	"ninjashop/internal/config"
	"ninjashop/internal/handler"
	"ninjashop/internal/infra/events"
	infraRepo "ninjashop/internal/infra/repository"
	"ninjashop/internal/infra/storage"
	"ninjashop/internal/server"
	"ninjashop/internal/usecase"
	"ninjashop/internal/validator"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 注文イベントの送信先。Closeはserve終了時に呼ぶ
type eventPublisher interface {
	usecase.OrderEventPublisher
	Close() error
}

type app struct {
	auth      *usecase.AuthUsecase
	handlers  server.Handlers
	publisher eventPublisher
}

// Repository（GORM実装）→ Usecase → Handler の順に組み立てる
func buildApp(cfg config.Config, gormDB *gorm.DB, logger *zap.Logger) *app {
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	statusRepo := infraRepo.NewStatusGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	sessionRepo := infraRepo.NewSessionGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	var publisher eventPublisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic, logger)
		logger.Info("order events enabled", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaOrderTopic))
	}

	images := storage.NewLocalStorage(cfg.MediaDir, cfg.MaxUploadBytes)

	authUC := usecase.NewAuthUsecase(
		userRepo,
		sessionRepo,
		validator.NewAuthValidator(userRepo),
		usecase.NewBcryptPasswordHasher(0),
		usecase.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL),
		usecase.SystemClock{},
		cfg.AccessTokenTTL,
		logger,
	)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, auditRepo, images, logger)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, auditRepo)
	wishlistUC := usecase.NewWishlistUsecase(txm, wishlistRepo, userRepo, productRepo)
	statusUC := usecase.NewStatusUsecase(statusRepo)
	orderUC := usecase.NewOrderUsecase(
		txm,
		orderRepo,
		userRepo,
		auditRepo,
		usecase.NewStatusPolicy(cfg.StatusTransitions),
		publisher,
		logger,
		usecase.OrderOptions{
			Timeout:         cfg.OrderTimeout,
			DefaultStatusID: cfg.DefaultStatusID,
			ConsumeOnOrder:  cfg.ConsumeOnOrder,
			PublishTimeout:  cfg.EventPublishTimeout,
		},
	)

	return &app{
		auth: authUC,
		handlers: server.Handlers{
			Auth:     handler.NewAuthHandler(authUC),
			Category: handler.NewCategoryHandler(categoryUC, productUC),
			Product:  handler.NewProductHandler(productUC),
			Wishlist: handler.NewWishlistHandler(wishlistUC),
			Order:    handler.NewOrderHandler(orderUC),
			Status:   handler.NewStatusHandler(statusUC),
		},
		publisher: publisher,
	}
}
