package main

import (
	"os"
	"time"

	"go-silpa/internal/app"
	"go-silpa/internal/bootstrap"
	"go-silpa/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	router := gin.Default()

	if err := app.BuildApp(router); err != nil {
		logger.Fatal("failed to build app", zap.Error(err))
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	auditLogger := bootstrap.NewStdoutAuditLogger()

	bootstrap.StartHTTPServer(router, bootstrap.ServerConfig{
		Port:         port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, auditLogger)
}
