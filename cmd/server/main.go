package main

import (
	"log"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"account_backend/internal/app/router"
	accountadapters "account_backend/internal/feature/account/adapters"
	accounthandler "account_backend/internal/feature/account/transport/handler"
	accountusecase "account_backend/internal/feature/account/usecase"
	"account_backend/internal/platform/cache"
	"account_backend/internal/platform/config"
	infradb "account_backend/internal/platform/db"
	"account_backend/internal/platform/hash"
	jwtmw "account_backend/internal/platform/jwt"
	infraredis "account_backend/internal/platform/redis"
	"account_backend/internal/platform/upload"
	"account_backend/internal/platform/validation"
)

func main() {
	// 設定は起動時に一度だけ読み込む（JWT_SECRET欠落は起動失敗）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// db
	db := infradb.OpenDB(cfg.DatabaseDSN, cfg.RunMigrations)

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisAddr == "" {
		log.Println("[WARN] Redis not configured. Running without cache.")
	} else if tmp, err := infraredis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := accountadapters.NewUserPostgres(db)

	// Redisキャッシュでラップ
	cachedUserRepo := cache.NewCachingUserRepository(rdb, 5*time.Minute, userRepo, "users")

	// Platform
	hasher := hash.NewBcryptHasher(cfg.BcryptCost)
	tokenGen := jwtmw.NewGenerator(cfg.JWTSecret, jwtmw.TokenLifetime)
	verifier := jwtmw.NewVerifier(cfg.JWTSecret)
	rules := validation.NewEngine()
	pictures := upload.NewSaver(cfg.UploadDir)

	// Usecase
	accountUC := accountusecase.NewAccountUsecase(cachedUserRepo, hasher, tokenGen)

	// Handler
	accountH := accounthandler.NewAccountHandler(accountUC, rules, pictures)

	// ルータ生成
	router := router.NewRouter(accountH, jwtmw.AuthRequired(verifier, cachedUserRepo), cfg.UploadDir)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
