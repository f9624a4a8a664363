package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prasetyowira/qrgen/api"
	"github.com/prasetyowira/qrgen/config"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/domain/payment"
	"github.com/prasetyowira/qrgen/infrastructure/blobstore"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/prasetyowira/qrgen/infrastructure/qrcode"
	"github.com/prasetyowira/qrgen/infrastructure/razorpay"
	"github.com/prasetyowira/qrgen/infrastructure/session"
)

func main() {
	// Load configuration from environment variables
	cfg := config.LoadConfig()

	// Initialize logger based on environment
	isProduction := cfg.LogLevel == "INFO"
	appLogger.Initialize(isProduction)
	defer appLogger.Close()

	appLogger.Info(constant.MsgApplicationStarting, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
		Data: map[string]interface{}{
			constant.DataPort:        cfg.Port,
			constant.DataEnvironment: cfg.LogLevel,
		},
	})

	// Blob stores for uploads and generated QR images
	uploads, err := blobstore.New(cfg.UploadDir)
	if err != nil {
		appLogger.Fatal(constant.MsgFailedToInitBlobStore, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppBlobInit,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
			Data: map[string]interface{}{
				constant.DataPath: cfg.UploadDir,
			},
		})
	}

	qrImages, err := blobstore.New(cfg.QRDir)
	if err != nil {
		appLogger.Fatal(constant.MsgFailedToInitBlobStore, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppBlobInit,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
			Data: map[string]interface{}{
				constant.DataPath: cfg.QRDir,
			},
		})
	}

	// Session store: durable when a database path is configured
	var store session.Store
	if cfg.SessionDBPath != "" {
		gormStore, err := session.NewGormStore(cfg.SessionDBPath)
		if err != nil {
			appLogger.Fatal(constant.MsgFailedToInitSessions, appLogger.LoggerInfo{
				ContextFunction: constant.CtxMain,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAppSessionInit,
					Message: err.Error(),
					Type:    constant.ErrTypeApp,
				},
				Data: map[string]interface{}{
					constant.DataPath: cfg.SessionDBPath,
				},
			})
		}
		defer gormStore.Close()
		store = gormStore
	} else {
		store = session.NewMemoryStore(cfg.SessionCacheSize)
	}

	sessions := session.NewManager(store, []byte(cfg.SessionSecret))

	// Payment gateway, disabled when credentials are absent
	var gateway payment.Gateway
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		gateway = razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	} else {
		appLogger.Warn(constant.MsgPaymentKeysMissing, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
		})
	}
	payments := payment.NewService(gateway, cfg.PriceINR)

	// Generator service
	encoder := qrcode.NewGenerator(256)
	gen := generator.NewService(uploads, qrImages, encoder, cfg.BaseURL, cfg.AllowedExtensions)

	// Create API handler and router
	handler := api.NewHandler(gen, payments, sessions, uploads, qrImages, cfg.RequirePayment, cfg.RazorpayKeyID)
	router := api.NewRouter(handler, cfg.MaxUploadBytes)
	router.SetupRoutes()

	// Configure HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info(constant.MsgServerStarting, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Data: map[string]interface{}{
				constant.DataPort: cfg.Port,
			},
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(constant.MsgServerFailedToStart, appLogger.LoggerInfo{
				ContextFunction: constant.CtxMain,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAppServerStart,
					Message: err.Error(),
					Type:    constant.ErrTypeApp,
				},
				Data: map[string]interface{}{
					constant.DataPort: cfg.Port,
				},
			})
		}
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	appLogger.Info(constant.MsgServerShuttingDown, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error(constant.MsgServerShutdownError, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppServerShutdown,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
	}

	appLogger.Info(constant.MsgServerStopped, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})
}
