package techniques

import (
	"encoding/json"
	"net/http"

	"github.com/ldhishere/judo-diary/internal/telemetry/tracing"
	"github.com/ldhishere/judo-diary/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	catalog Catalog
}

func NewHandler() *Handler {
	return &Handler{
		catalog: NewCatalog(),
	}
}

// HandleSearch returns the catalog, filtered by the optional query param
func (handler *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.techniques.search")
	defer span.End()

	result := handler.catalog.Search(r.URL.Query().Get("query"))

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("marshal techniques catalog error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}
