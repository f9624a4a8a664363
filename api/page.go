package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/prasetyowira/qrgen/constant"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// PageData is everything the index template renders.
type PageData struct {
	Flashes        []string
	Paid           bool
	RequirePayment bool
	Target         string
	QRImageURL     string
	RazorpayKeyID  string
	PriceINR       float64
}

// renderPage writes the index page.
func renderPage(w http.ResponseWriter, r *http.Request, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		appLogger.CtxError(r.Context(), "Failed to render page", appLogger.LoggerInfo{
			ContextFunction: constant.CtxIndex,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIRenderFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
	}
}
