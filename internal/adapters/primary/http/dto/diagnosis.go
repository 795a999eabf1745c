package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"disease-diagnosis-service/internal/core/domain"
)

var errAmbiguousInput = errors.New("exactly one of features or fields is required")

// DiagnoseRequest carries either an ordered feature vector or named fields.
type DiagnoseRequest struct {
	Features []float64          `json:"features"`
	Fields   map[string]float64 `json:"fields"`
}

// ToFeatureVector resolves the request against the domain schema.
func (r *DiagnoseRequest) ToFeatureVector(schema domain.Schema) (domain.FeatureVector, error) {
	switch {
	case r.Features != nil && r.Fields == nil:
		return domain.FeatureVector(r.Features), nil
	case r.Fields != nil && r.Features == nil:
		return schema.Vector(r.Fields)
	default:
		return nil, errAmbiguousInput
	}
}

type DiagnoseResponse struct {
	Domain  string `json:"domain"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

func ToDiagnoseResponse(d domain.Domain, label domain.RiskLabel) DiagnoseResponse {
	return DiagnoseResponse{
		Domain:  string(d),
		Label:   string(label),
		Message: label.Message(d),
	}
}

type FieldResponse struct {
	Name    string    `json:"name"`
	Label   string    `json:"label"`
	Min     *float64  `json:"min,omitempty"`
	Max     *float64  `json:"max,omitempty"`
	Choices []float64 `json:"choices,omitempty"`
	Integer bool      `json:"integer"`
	Step    float64   `json:"step,omitempty"`
}

type DomainResponse struct {
	Domain      string          `json:"domain"`
	DisplayName string          `json:"display_name"`
	Available   bool            `json:"available"`
	Reason      string          `json:"reason,omitempty"`
	Fields      []FieldResponse `json:"fields"`
}

type ListDomainsResponse struct {
	Items      []DomainResponse `json:"items"`
	Available  []string         `json:"available"`
	Disclaimer string           `json:"disclaimer"`
}

func ToDomainResponse(a domain.Availability, schema domain.Schema) DomainResponse {
	fields := make([]FieldResponse, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		fields = append(fields, FieldResponse{
			Name:    f.Name,
			Label:   f.Label,
			Min:     f.Min,
			Max:     f.Max,
			Choices: f.Choices,
			Integer: f.Integer,
			Step:    f.Step,
		})
	}
	return DomainResponse{
		Domain:      string(a.Domain),
		DisplayName: a.Domain.DisplayName(),
		Available:   a.Available,
		Reason:      a.Reason,
		Fields:      fields,
	}
}

type AvailabilityResponse struct {
	Domain    string `json:"domain"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func ToAvailabilityResponses(all []domain.Availability) []AvailabilityResponse {
	out := make([]AvailabilityResponse, 0, len(all))
	for _, a := range all {
		out = append(out, AvailabilityResponse{
			Domain:    string(a.Domain),
			Available: a.Available,
			Reason:    a.Reason,
		})
	}
	return out
}

type LoadReportResponse struct {
	ID          uuid.UUID `json:"id"`
	InstanceID  uuid.UUID `json:"instance_id"`
	Domain      string    `json:"domain"`
	Role        string    `json:"role"`
	Path        string    `json:"path"`
	Status      string    `json:"status"`
	Detail      string    `json:"detail,omitempty"`
	Checksum    string    `json:"checksum,omitempty"`
	Size        int64     `json:"size"`
	NumFeatures int       `json:"n_features"`
	LoadedAt    string    `json:"loaded_at"`
}

type ListLoadReportsResponse struct {
	Items []LoadReportResponse `json:"items"`
	Total int                  `json:"total"`
}

func ToLoadReportResponse(r domain.LoadReport) LoadReportResponse {
	return LoadReportResponse{
		ID:          r.ID,
		InstanceID:  r.InstanceID,
		Domain:      string(r.Domain),
		Role:        string(r.Role),
		Path:        r.Path,
		Status:      string(r.Status),
		Detail:      r.Detail,
		Checksum:    r.Checksum,
		Size:        r.Size,
		NumFeatures: r.NumFeatures,
		LoadedAt:    r.LoadedAt.Format(time.RFC3339),
	}
}

func ToListLoadReportsResponse(reports []domain.LoadReport) ListLoadReportsResponse {
	items := make([]LoadReportResponse, 0, len(reports))
	for _, r := range reports {
		items = append(items, ToLoadReportResponse(r))
	}
	return ListLoadReportsResponse{Items: items, Total: len(items)}
}

// IsAmbiguousInput reports whether err came from a request that set both or
// neither of features and fields.
func IsAmbiguousInput(err error) bool {
	return errors.Is(err, errAmbiguousInput)
}
