package main

import (
	"context"

	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/sandbox"
	"storefront/internal/server"

	"github.com/joho/godotenv"
)

// 開発用のバックエンド代わり（/api/almacen/, /api/ventas/ ...）
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{Service: "storefront-sandbox", Env: cfg.GoEnv, Level: cfg.LogLevel})

	secret := cfg.SandboxJWTSecret
	if secret == "" {
		if cfg.IsProd() {
			log.Fatal("SANDBOX_JWT_SECRET is required in prod")
		}
		secret = "dev_secret_change_me"
	}

	store := sandbox.NewStore()
	if err := sandbox.Seed(store); err != nil {
		log.WithError(err).Fatal("seed failed")
	}

	ctx, stop := server.WithSignals(context.Background())
	defer stop()

	e := sandbox.NewServer(store, []byte(secret), log).Echo()
	if err := server.Start(ctx, cfg.SandboxAddr(), e, log); err != nil {
		log.WithError(err).Fatal("sandbox stopped")
	}
}
