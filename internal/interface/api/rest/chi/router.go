package rest

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nanmu42/gzip"
	"github.com/stayhub/wallet-service/pkg/accesslog"
	"github.com/stayhub/wallet-service/pkg/logger"
	"github.com/stayhub/wallet-service/pkg/unzip"
)

func InitChi(logger logger.Logger) *chi.Mux {
	router := chi.NewRouter()
	router.Use(accesslog.Handler(logger))
	router.Use(middleware.Recoverer)
	router.Use(gzip.DefaultHandler().WrapHandler)
	router.Use(unzip.Middleware(logger))

	return router
}
