package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"zurnaWorkshop/cmd/app"
	"zurnaWorkshop/internal/config"
	handlers "zurnaWorkshop/internal/handler"
	"zurnaWorkshop/internal/logger"
	"zurnaWorkshop/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	log, err := logger.Init(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if cfg.Auth.JWTSecretKey == "" {
		zap.S().Fatal("JWT_SECRET_KEY is not set in the .env file")
	}
	if cfg.Auth.SessionSecret == "" {
		zap.S().Fatal("SESSION_SECRET is not set in the .env file")
	}

	deps := app.App(cfg)
	defer deps.Close()

	pages, err := handlers.NewPages()
	if err != nil {
		zap.S().Fatalf("failed to load templates: %v", err)
	}

	handler := handlers.NewHandlers(deps.Client, deps.Services, pages, cfg, deps.Validate)

	router := mux.NewRouter()

	// pages
	router.HandleFunc("/", handler.HomePage).Methods(http.MethodGet)
	router.HandleFunc("/auth", handler.AuthPage).Methods(http.MethodGet)
	router.HandleFunc("/auth/recover", handler.RecoverLink).Methods(http.MethodGet)
	router.HandleFunc("/auth/confirm", handler.ConfirmLink).Methods(http.MethodGet)
	router.HandleFunc("/admin", handler.AdminPage).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	router.PathPrefix("/static/").Handler(pages.Static()).Methods(http.MethodGet)

	// auth
	signInLimit := middleware.RateLimit(deps.Limiter, "signin", cfg.Redis.TrustedProxies)
	router.Handle("/api/auth/signin", signInLimit(http.HandlerFunc(handler.SignIn))).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/signup", handler.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/reset", handler.ResetPassword).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/password", handler.UpdatePassword).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/signout", handler.SignOut).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/session", handler.CurrentSession).Methods(http.MethodGet)

	// contact
	contactLimit := middleware.RateLimit(deps.Limiter, "contact", cfg.Redis.TrustedProxies)
	router.Handle("/api/contact", contactLimit(http.HandlerFunc(handler.SubmitContact))).Methods(http.MethodPost)
	router.HandleFunc("/functions/v1/send-contact-email", handler.SendContactEmail)

	// admin API
	admin := router.PathPrefix("/api/admin").Subrouter()
	admin.Use(mux.MiddlewareFunc(middleware.RequireAdmin(deps.Client, deps.Services.Guard)))
	admin.HandleFunc("/products", handler.ListProducts).Methods(http.MethodGet)
	admin.HandleFunc("/products", handler.CreateProduct).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", handler.UpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", handler.DeleteProduct).Methods(http.MethodDelete)
	admin.HandleFunc("/images", handler.ListImages).Methods(http.MethodGet)
	admin.HandleFunc("/images", handler.UploadImage).Methods(http.MethodPost)
	admin.HandleFunc("/images/{id}", handler.DeleteImage).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	zap.S().Infow("server started", "addr", addr, "database", cfg.DB.DbNAME, "base_url", cfg.BaseURL)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		zap.S().Fatalf("server failed: %v", err)
	}
}
