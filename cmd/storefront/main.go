package main

import (
	"context"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/api"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/invoice"
	"storefront/internal/logger"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	// .env は無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{Service: "storefront", Env: cfg.GoEnv, Level: cfg.LogLevel})

	ctx, stop := server.WithSignals(context.Background())
	defer stop()

	//保存領域（カート・トークン）
	kv, err := infraRepo.OpenKeyValueStore(ctx, cfg)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.StorageDriver).Fatal("open storage failed")
	}
	defer func() { _ = kv.Close() }()

	cartRepo := infraRepo.NewCartKVRepository(kv)
	credRepo := infraRepo.NewCredentialKVRepository(kv)

	//バックエンドAPI
	client := api.NewClient(api.Options{
		BaseURL:    cfg.APIBaseURL,
		AuthScheme: cfg.APIAuthScheme,
		Timeout:    cfg.APITimeout,
	}, log)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	gate := usecase.NewOperationGate()
	inputValidator := validator.NewInputValidator()
	renderer := invoice.NewRenderer(cfg.InvoiceDir, log)

	//Usecase生成
	sessionUC := usecase.NewSessionUsecase(credRepo, client, inputValidator, gate, clock, log)
	catalogUC := usecase.NewCatalogUsecase(client, sessionUC, log)
	reconciler := usecase.NewStockReconciler(client, catalogUC, sessionUC, log)
	cartUC := usecase.NewCartUsecase(cartRepo, reconciler, catalogUC, catalogUC, gate, log)
	checkoutUC := usecase.NewCheckoutUsecase(cartUC, client, sessionUC, renderer, gate, idGen, clock, log)
	adminUC := usecase.NewAdminUsecase(client, sessionUC, catalogUC, inputValidator, log)

	//保存済みカートを読み込み、ログイン済みなら商品も取っておく
	if err := cartUC.Load(ctx); err != nil {
		log.WithError(err).Warn("saved cart could not be loaded; starting empty")
	}
	if _, err := sessionUC.Token(ctx); err == nil {
		if _, err := catalogUC.FetchCatalog(ctx); err != nil {
			log.WithError(err).Warn("initial catalog fetch failed")
		}
	}

	//Handler生成
	h := server.Handlers{
		Session:  handler.NewSessionHandler(sessionUC, cartUC),
		Catalog:  handler.NewCatalogHandler(catalogUC),
		Cart:     handler.NewCartHandler(cartUC),
		Checkout: handler.NewCheckoutHandler(checkoutUC, renderer, invoice.ErrNotFound),
		Admin:    handler.NewAdminHandler(adminUC),
	}

	//Server起動
	e := server.New(h, sessionUC, log)
	if err := server.Start(ctx, cfg.Addr(), e, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("bye")
}
