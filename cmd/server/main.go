package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/auth"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/cache"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/config"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/database"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/db"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/handlers"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/health"
	httprouter "github.com/isah4/Record-system-full-stack-web-app-sub000/internal/http"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/live"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/middleware"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/monitoring"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/repositories"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/services"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()
	log.Println("[DB] connected")

	migrator := database.NewMigrator(pool, "migrations")
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("[Migrations] failed: %v", err)
	}

	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password); err != nil {
		log.Printf("[Cache] redis unavailable, running without cache: %v", err)
	} else {
		log.Println("[Cache] redis connected")
		defer cache.Close()
	}

	feed := live.NewHub()
	go feed.Run()

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	itemRepo := repositories.NewItemRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)
	debtRepo := repositories.NewDebtRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)
	activityRepo := repositories.NewActivityLogRepository(pool)
	reportRepo := repositories.NewReportRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, jwtManager)
	customerService := services.NewCustomerService(customerRepo)
	itemService := services.NewItemService(itemRepo)
	saleService := services.NewSaleService(saleRepo)
	saleService.SetFeed(feed)
	debtService := services.NewDebtService(debtRepo)
	debtService.SetFeed(feed)
	expenseService := services.NewExpenseService(expenseRepo)
	expenseService.SetFeed(feed)
	reportService := services.NewReportService(reportRepo, itemRepo, customerRepo)

	// Handlers
	h := &httprouter.Handlers{
		Auth:      handlers.NewAuthHandler(userService),
		Customers: handlers.NewCustomerHandler(customerService),
		Items:     handlers.NewItemHandler(itemService),
		Sales:     handlers.NewSaleHandler(saleService),
		Debts:     handlers.NewDebtHandler(debtService),
		Expenses:  handlers.NewExpenseHandler(expenseService),
		Activity:  handlers.NewActivityHandler(activityRepo, feed),
		Reports:   handlers.NewReportHandler(reportService),
		Dashboard: handlers.NewDashboardHandler(reportService),
		Ops:       handlers.NewOpsHandler(health.NewChecker(pool), monitoring.NewCollector(pool)),
	}

	authMW := middleware.NewAuthMiddleware(jwtManager, userRepo)
	router := httprouter.NewRouter(cfg, h, authMW)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[Server] listening on :%d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("[Server] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[Server] forced shutdown: %v", err)
	}
}
