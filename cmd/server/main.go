package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"diamondadmin/internal/config"
	"diamondadmin/internal/db"
	"diamondadmin/internal/handlers"
	"diamondadmin/internal/server"
	"diamondadmin/internal/store"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	cfg := config.Load()

	if *migrateOnlyFlag {
		if _, err := db.ConnectAndMigrate(cfg.DatabaseDSN); err != nil {
			log.Fatalf("migrate-only failed: %v", err)
		}
		log.Println("migrations completed; exiting as requested")
		return
	}

	deps := server.Deps{Auth: handlers.NewAuthHandler(cfg)}
	switch cfg.Store {
	case "gorm":
		conn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		deps.DB = conn
		deps.Products = handlers.NewProductHandler(store.NewGormProducts(conn))
		deps.Customers = handlers.NewCustomerHandler(store.NewGormCustomers(conn))
	default:
		products := store.NewMemoryProducts(cfg.MockLatency)
		customers := store.NewMemoryCustomers(cfg.MockLatency)
		deps.Products = handlers.NewProductHandler(products)
		deps.Customers = handlers.NewCustomerHandler(customers)
	}
	deps.Dashboard = handlers.NewDashboardHandler(deps.Products.Store, deps.Customers.Store)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.New(deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server env=%s store=%s port=%s", cfg.Env, cfg.Store, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
