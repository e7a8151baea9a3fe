package handler

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/landing/render"
	"github.com/lambda-feedback/landing/router"
	"github.com/lambda-feedback/landing/util/logging"
	"github.com/lambda-feedback/landing/util/report"
)

// BaseTemplate is the template rendered for the index page.
const BaseTemplate = "base"

// ContentTypeHTML is text/html with the charset of html/template output.
const ContentTypeHTML = "text/html; charset=utf-8"

// IndexHandlerParams defines the dependencies for the index handler.
type IndexHandlerParams struct {
	fx.In

	Renderer render.Renderer
	Log      *zap.Logger
}

// IndexHandler answers requests for the root page.
type IndexHandler struct {
	renderer render.Renderer
	log      *zap.Logger
}

var _ router.Handler = (*IndexHandler)(nil)

func NewIndexHandler(params IndexHandlerParams) *IndexHandler {
	return &IndexHandler{
		renderer: params.Renderer,
		log:      params.Log,
	}
}

// Handle renders the base template. A render failure yields an empty 500
// response; the error is logged and reported but never sent to the caller.
func (h *IndexHandler) Handle(ctx context.Context, req router.Request) router.Response {
	log := logging.WithRequestID(ctx, h.log).With(
		zap.String("path", req.Path),
		zap.String("method", req.Method),
		zap.String("template", BaseTemplate),
	)

	body, err := h.renderer.Render(BaseTemplate, nil)
	if err != nil {
		log.Error("failed to render template", zap.Error(err))
		report.CaptureException(ctx, err)
		return router.ErrorResponse(err)
	}

	return router.NewResponse(http.StatusOK, ContentTypeHTML, body)
}
