package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/renohub/bidding-service/internal/db"
	"github.com/renohub/bidding-service/internal/handlers"
	"github.com/renohub/bidding-service/internal/lifecycle"
	"github.com/renohub/bidding-service/internal/repository"
	"github.com/renohub/bidding-service/internal/router"
	"github.com/renohub/bidding-service/internal/router/config"
	"github.com/renohub/bidding-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	stateMachine := lifecycle.NewProjectStateMachine()
	if err := stateMachine.Validate(); err != nil {
		log.Fatalf("invalid project state machine: %v", err)
	}

	projectRepo := repository.NewPostgresProjectRepository(dbPool)
	bidRepo := repository.NewPostgresBidRepository(dbPool)
	milestoneRepo := repository.NewPostgresMilestoneRepository(dbPool)
	notificationRepo := repository.NewPostgresNotificationRepository(dbPool)
	userRepo := repository.NewPostgresUserRepository(dbPool)

	notificationService := services.NewNotificationService(notificationRepo, projectRepo, bidRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, bidRepo, milestoneRepo, stateMachine, notificationService, logger)
	bidService := services.NewBidService(bidRepo, projectRepo, notificationService, logger)
	milestoneService := services.NewMilestoneService(milestoneRepo, projectRepo)

	projectHandler := handlers.NewProjectHandler(projectService, logger, 5*time.Second)
	bidHandler := handlers.NewBidHandler(bidService, logger, 5*time.Second)
	milestoneHandler := handlers.NewMilestoneHandler(milestoneService, logger, 5*time.Second)
	notificationHandler := handlers.NewNotificationHandler(notificationService, logger, 5*time.Second)

	routes := router.InitRoutes(projectHandler, bidHandler, milestoneHandler, notificationHandler)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
