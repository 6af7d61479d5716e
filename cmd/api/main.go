package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"files-manager/internal/cache"
	"files-manager/internal/config"
	"files-manager/internal/database"
	"files-manager/internal/handlers"
	"files-manager/internal/middleware"
	"files-manager/internal/services"
	"files-manager/internal/storage"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg := config.Load()
	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DatabaseURI, cfg.DatabaseName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(ctx)

	sessions, err := cache.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer sessions.Close()

	blobs := storage.NewLocalStorage(cfg.FolderPath)

	authService := services.NewAuthService(db, sessions)
	fileService := services.NewFileService(db, blobs)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService)
	fileHandler := handlers.NewFileHandler(fileService, authService)
	appHandler := handlers.NewAppHandler(db, sessions)

	router := http.NewServeMux()

	router.HandleFunc("GET /status", appHandler.Status)
	router.HandleFunc("GET /stats", appHandler.Stats)

	router.HandleFunc("POST /users", authHandler.Register)
	router.HandleFunc("GET /connect", authHandler.Connect)
	router.HandleFunc("GET /disconnect", authHandler.Disconnect)
	router.Handle("GET /users/me", authMiddleware.RequireAuth(http.HandlerFunc(authHandler.Me)))

	router.Handle("POST /files", authMiddleware.RequireAuth(http.HandlerFunc(fileHandler.Upload)))
	router.Handle("GET /files", authMiddleware.RequireAuth(http.HandlerFunc(fileHandler.Index)))
	router.Handle("GET /files/{id}", authMiddleware.RequireAuth(http.HandlerFunc(fileHandler.Show)))
	router.Handle("PUT /files/{id}/publish", authMiddleware.RequireAuth(http.HandlerFunc(fileHandler.Publish)))
	router.Handle("PUT /files/{id}/unpublish", authMiddleware.RequireAuth(http.HandlerFunc(fileHandler.Unpublish)))
	router.HandleFunc("GET /files/{id}/data", fileHandler.Data)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	slog.Info("server starting", "addr", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}
