package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todoapi/internal/auth"
	intconfig "todoapi/internal/config"
	intdb "todoapi/internal/db"
	router "todoapi/internal/http"
	"todoapi/internal/repositories"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	tokens, err := auth.NewTokenService(env.JWTSecret, env.TokenTTL)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	deps := router.Deps{Tokens: tokens}
	var db *sql.DB
	switch env.StoreDriver {
	case intconfig.StoreMemory:
		log.Println("using in-memory store; data is lost on restart")
		deps.Users = repositories.NewMemoryUserRepository()
		deps.Todos = repositories.NewMemoryTodoRepository()
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err = intconfig.OpenDB(ctx, env.DatabaseDSN)
		if err == nil {
			err = intdb.Migrate(ctx, db)
		}
		cancel()
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		deps.Users = repositories.UserRepository{DB: db}
		deps.Todos = repositories.TodoRepository{DB: db}
	}

	r := router.NewRouter(env, deps)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}
	if db != nil {
		_ = db.Close()
	}

	log.Println("server stopped cleanly.")
}
