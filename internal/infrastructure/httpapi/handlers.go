package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"FarmDashboard/internal/domain"
	"FarmDashboard/internal/family"
	"FarmDashboard/internal/period"
	"FarmDashboard/internal/usecase"
)

// Reporter is the dashboard use case as seen by the HTTP layer.
type Reporter interface {
	Report(ctx context.Context, familyName string, lotID int64, periodName string) ([]domain.BucketSummary, error)
	Overview(ctx context.Context, lotID int64) (domain.LotOverview, error)
	Families() []string
}

// DashboardHandler serves the /api/dashboard routes.
type DashboardHandler struct {
	reporter Reporter
	logger   *slog.Logger
}

// NewDashboardHandler wires the reporter.
func NewDashboardHandler(reporter Reporter, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{reporter: reporter, logger: logger}
}

// Report handles GET /api/dashboard/:family/:idLote/:periodo.
// The family is resolved by the reporter, so aliases work too.
func (h *DashboardHandler) Report(c *gin.Context) {
	familyName := c.Param("family")
	lotID, ok := parseLotID(c, c.Param("idLote"))
	if !ok {
		return
	}

	buckets, err := h.reporter.Report(c.Request.Context(), familyName, lotID, c.Param("periodo"))
	switch {
	case err == nil:
	case errors.Is(err, period.ErrInvalidPeriod):
		InvalidPeriod(c, c.Param("periodo"))
		return
	case errors.Is(err, family.ErrUnknownFamily):
		NotFound(c, "unknown report", gin.H{"family": familyName, "available": h.reporter.Families()})
		return
	default:
		h.error("report failed", "family", familyName, "lot", lotID, "error", err)
		DatabaseError(c, "report", err)
		return
	}

	payload := make([]gin.H, 0, len(buckets))
	for _, b := range buckets {
		payload = append(payload, bucketJSON(b))
	}
	c.JSON(http.StatusOK, payload)
}

// Overview handles GET /api/dashboard/infolote/:id.
func (h *DashboardHandler) Overview(c *gin.Context) {
	lotID, ok := parseLotID(c, c.Param("id"))
	if !ok {
		return
	}

	overview, err := h.reporter.Overview(c.Request.Context(), lotID)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrLotNotFound):
		LotNotFound(c, lotID)
		return
	default:
		h.error("overview failed", "lot", lotID, "error", err)
		DatabaseError(c, "overview", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"idLote":           overview.LotID,
		"primerRegistro":   formatDate(overview.FirstRecord),
		"ultimoRegistro":   formatDate(overview.LastRecord),
		"diasProduccion":   overview.ProductionDays,
		"produccionTotal":  overview.TotalProduced,
		"defectuosos":      overview.TotalDefective,
		"totalClasificado": overview.TotalClassified,
		"cantidadActual":   overview.CurrentHeadcount,
		"bajas":            overview.TotalLosses,
	})
}

// Health handles GET /healthz.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func parseLotID(c *gin.Context, raw string) (int64, bool) {
	lotID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || lotID <= 0 {
		BadRequest(c, "invalid lot id", gin.H{"id_lote": raw})
		return 0, false
	}
	return lotID, true
}

func bucketJSON(b domain.BucketSummary) gin.H {
	out := gin.H{"fechaRegistro": b.Label}
	if b.SizeCategory != "" {
		out["tamano"] = b.SizeCategory
	}
	for name, value := range b.Sums {
		out[lowerFirst(name)] = value
	}
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func (h *DashboardHandler) error(msg string, args ...interface{}) {
	if h.logger != nil {
		h.logger.Error(msg, args...)
	}
}
