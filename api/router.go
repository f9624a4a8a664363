package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prasetyowira/qrgen/api/middleware"
	"github.com/prasetyowira/qrgen/constant"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
)

// Router represents the application router
type Router struct {
	handler *Handler
	router  *chi.Mux
}

// NewRouter creates a new router. maxBodyBytes caps every request body,
// which bounds uploads.
func NewRouter(handler *Handler, maxBodyBytes int64) *Router {
	r := chi.NewRouter()

	// Middleware setup
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger())
	r.Use(middleware.MaxBody(maxBodyBytes))

	return &Router{
		handler: handler,
		router:  r,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	appLogger.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	r.router.Get(constant.RouteIndex, r.handler.Index)
	r.router.Post(constant.RouteIndex, r.handler.GenerateQR)
	r.router.Get(constant.RouteFile, r.handler.ServeFile)
	r.router.Get(constant.RouteQR, r.handler.ServeQR)

	// Payment routes
	r.router.Post(constant.RouteCreateOrder, r.handler.CreateOrder)
	r.router.Post(constant.RoutePaymentHandler, r.handler.PaymentHandler)

	// Healthcheck
	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, r *http.Request) {
		appLogger.CtxDebug(r.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(constant.MsgHealthy))
	})
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
