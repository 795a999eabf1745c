package handlers

import (
	"disease-diagnosis-service/internal/core/ports/output"
	"disease-diagnosis-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	diagnosisSvc *services.DiagnosisService
	reportRepo   ports.LoadReportRepository
}

// New builds the HTTP handler. reportRepo may be nil when the database
// integration is disabled.
func New(diagnosisSvc *services.DiagnosisService, reportRepo ports.LoadReportRepository) *Handler {
	return &Handler{
		diagnosisSvc: diagnosisSvc,
		reportRepo:   reportRepo,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Domains
	r.GET("/domains", h.ListDomains)
	r.GET("/domains/:domain", h.GetDomain)
	r.POST("/domains/:domain/diagnose", h.Diagnose)

	// Artifact load reports
	r.GET("/load_reports", h.ListLoadReports)
	r.GET("/load_reports/history", h.ListLoadReportHistory)
}

// RegisterProbes mounts the liveness and readiness probes at the router root.
func (h *Handler) RegisterProbes(r gin.IRoutes) {
	r.GET("/healthz", h.Health)
	r.GET("/readyz", h.Ready)
}
