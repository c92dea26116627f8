package app

import (
	"net/http"

	"gorm.io/gorm"

	"fleetdesk-go/internal/config"
	"fleetdesk-go/internal/db"
	assignmentdomain "fleetdesk-go/internal/domain/assignment"
	driverdomain "fleetdesk-go/internal/domain/driver"
	finedomain "fleetdesk-go/internal/domain/fine"
	paymentdomain "fleetdesk-go/internal/domain/payment"
	vehicledomain "fleetdesk-go/internal/domain/vehicle"
	assignmentrepo "fleetdesk-go/internal/repository/postgres/assignment"
	driverrepo "fleetdesk-go/internal/repository/postgres/driver"
	finerepo "fleetdesk-go/internal/repository/postgres/fine"
	paymentrepo "fleetdesk-go/internal/repository/postgres/payment"
	vehiclerepo "fleetdesk-go/internal/repository/postgres/vehicle"
	"fleetdesk-go/internal/storage"
	"fleetdesk-go/internal/supabase"
	"fleetdesk-go/internal/transport/httpserver"
	"fleetdesk-go/internal/transport/httpserver/handler"
	"fleetdesk-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	auth := supabase.NewAuthClient(cfg.Supabase)
	store := storage.NewSupabase(cfg.Supabase, cfg.Storage)

	drivers := driverdomain.NewService(driverrepo.NewPostgres(dbConn), store)
	vehicles := vehicledomain.NewService(vehiclerepo.NewPostgres(dbConn))
	assignments := assignmentdomain.NewService(assignmentrepo.NewPostgres(dbConn))
	fines := finedomain.NewService(finerepo.NewPostgres(dbConn))
	payments := paymentdomain.NewService(paymentrepo.NewPostgres(dbConn), store)

	handlers := handler.New(drivers, vehicles, assignments, fines, payments, auth, log, cfg.Storage.MaxUploadSize)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, auth, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
