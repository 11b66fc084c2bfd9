package main

import (
	"crypto/tls"
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/username/fundify/backend/src/config"
	"github.com/username/fundify/backend/src/database"
	"github.com/username/fundify/backend/src/handlers"
	"github.com/username/fundify/backend/src/logger"
	"github.com/username/fundify/backend/src/model"
	"github.com/username/fundify/backend/src/processors"
	"github.com/username/fundify/backend/src/services"
	"golang.org/x/time/rate"
)

func proxyHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Forwarded-Proto") == "https" {
			r.URL.Scheme = "https"
			r.TLS = &tls.ConnectionState{}
		}
		next.ServeHTTP(w, r)
	})
}

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000":     true,
			config.Cfg.FrontendBaseURL: true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Fundify backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	store, err := model.NewStore(database.DB)
	if err != nil {
		stdlog.Fatalf("Failed to initialize store: %v", err)
	}

	reportCache := services.NewReportCache()

	transactionProcessor := processors.NewTransactionProcessor()
	accountProcessor := processors.NewAccountProcessor()

	dashboardService := services.NewDashboardService(store, reportCache)
	importService := services.NewImportService(store, transactionProcessor, accountProcessor, dashboardService)

	txHandler := handlers.NewTransactionHandler(store, importService, dashboardService)
	planHandler := handlers.NewAccountPlanHandler(store, importService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(proxyHeadersMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Fundify Dashboard API",
			"version": "1.0.0",
			"endpoints": map[string]string{
				"health":       "/api/health",
				"dashboard":    "/api/dashboard",
				"transactions": "/api/transactions",
				"accountPlan":  "/api/account-plan",
			},
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"status": "ok", "message": "Fundify API is running"})
		})

		r.Get("/dashboard", dashboardHandler.HandleGetDashboard)
		r.Get("/cash-flow", dashboardHandler.HandleGetCashFlow)

		r.Get("/transactions", txHandler.HandleListTransactions)
		r.Post("/transactions", txHandler.HandleCreateTransaction)
		r.Post("/transactions/import", txHandler.HandleImportTransactions)
		r.Get("/transactions/import/history", txHandler.HandleImportHistory)
		// Rotas específicas antes das rotas com parâmetros.
		r.Delete("/transactions/all", txHandler.HandleDeleteAllTransactions)
		r.Put("/transactions/{id}", txHandler.HandleUpdateTransaction)
		r.Delete("/transactions/{id}", txHandler.HandleDeleteTransaction)

		r.Post("/account-plan/import", planHandler.HandleImportAccountPlan)
		r.Get("/account-plan", planHandler.HandleListAccountPlan)
		r.Delete("/account-plan/all", planHandler.HandleClearAccountPlan)
	})

	r.NotFound(handlers.HandleNotFound)

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
