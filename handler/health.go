package handler

import (
	"context"
	"net/http"

	"github.com/lambda-feedback/landing/router"
)

var healthBody = []byte(`{"status":"ok"}`)

// HealthHandler reports that the process is up.
func HealthHandler(context.Context, router.Request) router.Response {
	return router.NewResponse(http.StatusOK, "application/json", healthBody)
}
