package handlers

import (
	"net/http"
	"strconv"

	"disease-diagnosis-service/internal/adapters/primary/http/dto"
	"disease-diagnosis-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

func (h *Handler) ListDomains(c *gin.Context) {
	all := h.diagnosisSvc.AvailabilityAll()
	items := make([]dto.DomainResponse, 0, len(all))
	for _, a := range all {
		schema, err := h.diagnosisSvc.Schema(a.Domain)
		if err != nil {
			mapDomainError(c, err)
			return
		}
		items = append(items, dto.ToDomainResponse(a, schema))
	}

	c.JSON(http.StatusOK, dto.ListDomainsResponse{
		Items:      items,
		Available:  h.diagnosisSvc.AvailableDomains(),
		Disclaimer: domain.Disclaimer,
	})
}

func (h *Handler) GetDomain(c *gin.Context) {
	d, err := domain.ParseDomain(c.Param("domain"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	a, err := h.diagnosisSvc.Availability(d)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	schema, err := h.diagnosisSvc.Schema(d)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDomainResponse(a, schema))
}

func (h *Handler) Diagnose(c *gin.Context) {
	d, err := domain.ParseDomain(c.Param("domain"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	a, err := h.diagnosisSvc.Availability(d)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	if !a.Available {
		c.JSON(http.StatusServiceUnavailable, dto.ToDiagnoseResponse(d, domain.RiskLabelUnavailable))
		return
	}

	var req dto.DiagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schema, err := h.diagnosisSvc.Schema(d)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	features, err := req.ToFeatureVector(schema)
	if err != nil {
		if dto.IsAmbiguousInput(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mapDomainError(c, err)
		return
	}
	if err := schema.Validate(features); err != nil {
		mapDomainError(c, err)
		return
	}

	label, err := h.diagnosisSvc.Diagnose(c.Request.Context(), d, features)
	if err != nil {
		log.WithFields(log.Fields{
			"domain":     d,
			"request_id": c.GetString("request_id"),
		}).WithError(err).Error("diagnose failed")
		mapDomainError(c, err)
		return
	}

	status := http.StatusOK
	if label == domain.RiskLabelUnavailable {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.ToDiagnoseResponse(d, label))
}

func (h *Handler) ListLoadReports(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToListLoadReportsResponse(h.diagnosisSvc.LoadReports()))
}

func (h *Handler) ListLoadReportHistory(c *gin.Context) {
	if h.reportRepo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "load report history is disabled"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultHistoryLimit)))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	reports, err := h.reportRepo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		log.WithError(err).Error("list load report history failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListLoadReportsResponse(reports))
}

func (h *Handler) Health(c *gin.Context) {
	if h.reportRepo != nil {
		if err := h.reportRepo.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"domains": dto.ToAvailabilityResponses(h.diagnosisSvc.AvailabilityAll()),
	})
}

func (h *Handler) Ready(c *gin.Context) {
	available := h.diagnosisSvc.AvailableDomains()
	if len(available) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "available": available})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "available": available})
}
