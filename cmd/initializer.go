package main

import (
	"database/sql"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/sublimeanger/vintifi-sub000/internal/config"
	"github.com/sublimeanger/vintifi-sub000/internal/continuation"
	"github.com/sublimeanger/vintifi-sub000/internal/handlers"
	"github.com/sublimeanger/vintifi-sub000/internal/repositories"
	"github.com/sublimeanger/vintifi-sub000/internal/services"
	"github.com/sublimeanger/vintifi-sub000/internal/wizard"
	"github.com/sublimeanger/vintifi-sub000/utils"

	"firebase.google.com/go/messaging"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	tokens   *utils.Manager
	sessions *wizard.Manager
	hub      *EventHub

	itemRepo *repositories.ItemRepository

	wizardHandler *handlers.WizardHandler
	itemHandler   *handlers.ItemHandler
}

func initializeApp(db *sql.DB, rdb *redis.Client, uploader services.Uploader, fcmClient *messaging.Client,
	tokens *utils.Manager, cfg config.Config, errorLog, infoLog *log.Logger) *application {

	// Repositories
	itemRepo := repositories.ItemRepository{DB: db}

	// Stores
	contStore := &continuation.RedisStore{RDB: rdb}
	sessions := wizard.NewManager()

	// External service clients
	pricingClient := services.NewPricingClient(nil, cfg.AI.PricingURL, cfg.AI.PricingKey)
	optimizerClient := services.NewOptimizerClient(nil, cfg.AI.OptimizerURL, cfg.AI.OptimizerKey)

	// Services
	notifier := &services.NotifyService{Client: fcmClient, ErrorLog: errorLog}
	itemService := &services.ItemService{Repo: &itemRepo, Storage: uploader}
	priceService := &services.PriceService{Pricing: pricingClient, Repo: &itemRepo}
	optimizerService := &services.OptimizerService{Optimizer: optimizerClient, Repo: &itemRepo}
	photoService := &services.PhotoService{
		Repo:          &itemRepo,
		Continuations: contStore,
		Notifier:      notifier,
		Cfg:           cfg.Wizard,
		ErrorLog:      errorLog,
	}
	packagingService := &services.PackagingService{Repo: &itemRepo, Continuations: contStore, Cfg: cfg.Wizard}
	importerService := services.NewImporterService(nil)

	// Handlers
	wizardHandler := &handlers.WizardHandler{
		Sessions:  sessions,
		Items:     itemService,
		Prices:    priceService,
		Optimizer: optimizerService,
		Photos:    photoService,
		Packaging: packagingService,
		Importer:  importerService,
	}
	itemHandler := &handlers.ItemHandler{Repo: &itemRepo}

	return &application{
		errorLog:      errorLog,
		infoLog:       infoLog,
		db:            db,
		tokens:        tokens,
		sessions:      sessions,
		hub:           NewEventHub(sessions.Events()),
		itemRepo:      &itemRepo,
		wizardHandler: wizardHandler,
		itemHandler:   itemHandler,
	}
}
