package main

import (
	"shop/internal/cartstore"
	"shop/internal/config"
	"shop/internal/domain/model"
	"shop/internal/handler"
	"shop/internal/infra/db"
	infraRepo "shop/internal/infra/repository"
	"shop/internal/server"
	"shop/internal/usecase"
	"shop/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	//.envは無くても動く（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Service: "shop-api",
		Env:     cfg.GoEnv,
		Level:   cfg.LogLevel,
	})

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Good{},
		&model.Order{},
	); err != nil {
		panic(err)
	}

	//カート保存先のRedis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	cartKV := cartstore.NewRedisKV(rdb)

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	goodRepo := infraRepo.NewGoodGormRepository(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret)
	goodUC := usecase.NewGoodUsecase(goodRepo)
	checkoutUC := usecase.NewCheckoutUsecase(orderRepo, userRepo, log)
	orderUC := usecase.NewOrderUsecase(orderRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo, userRepo, log)
	statsUC := usecase.NewStatsUsecase(orderRepo, userRepo, log)

	//Handler生成
	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(authUC),
		Good:       handler.NewGoodHandler(goodUC),
		Cart:       handler.NewCartHandler(cartKV, log),
		Order:      handler.NewOrderHandler(checkoutUC, orderUC, cartKV, log),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC, statsUC),
	}

	e := server.New(cfg, handlers)

	log.Info("starting", "port", cfg.Port)
	if err := server.Start(e, ":"+cfg.Port, log); err != nil {
		panic(err)
	}
}
