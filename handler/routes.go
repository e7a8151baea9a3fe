package handler

import (
	"net/http"

	"github.com/lambda-feedback/landing/router"
)

func NewIndexRoute(handler *IndexHandler) router.RouteResult {
	return router.AsNamedRoute("index", http.MethodGet, "/", handler)
}

func NewHealthRoute() router.RouteResult {
	return router.AsNamedRoute("health", http.MethodGet, "/health", router.HandlerFunc(HealthHandler))
}
