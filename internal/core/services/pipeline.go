package services

import (
	"fmt"

	"disease-diagnosis-service/internal/core/domain"
)

// FeaturePipeline scales a feature vector and classifies it for one domain.
// It is either fully available (scaler and classifier both loaded) or
// fully unavailable; it is read-only after construction.
type FeaturePipeline struct {
	domain     domain.Domain
	schema     domain.Schema
	scaler     domain.Scaler
	classifier domain.Classifier
	reason     string
}

// NewFeaturePipeline builds a pipeline for d. A nil scaler or classifier
// yields an unavailable pipeline; the other half is discarded.
func NewFeaturePipeline(d domain.Domain, scaler domain.Scaler, classifier domain.Classifier) (*FeaturePipeline, error) {
	schema, err := domain.SchemaFor(d)
	if err != nil {
		return nil, err
	}
	p := &FeaturePipeline{domain: d, schema: schema}
	switch {
	case scaler == nil && classifier == nil:
		p.reason = "scaler and model not loaded"
	case scaler == nil:
		p.reason = "scaler not loaded"
	case classifier == nil:
		p.reason = "model not loaded"
	default:
		p.scaler = scaler
		p.classifier = classifier
	}
	return p, nil
}

// UnavailablePipeline builds a pipeline that always answers Unavailable.
func UnavailablePipeline(d domain.Domain, reason string) (*FeaturePipeline, error) {
	p, err := NewFeaturePipeline(d, nil, nil)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		p.reason = reason
	}
	return p, nil
}

func (p *FeaturePipeline) Domain() domain.Domain {
	return p.domain
}

func (p *FeaturePipeline) Schema() domain.Schema {
	return p.schema
}

func (p *FeaturePipeline) Available() bool {
	return p.scaler != nil && p.classifier != nil
}

func (p *FeaturePipeline) Availability() domain.Availability {
	return domain.Availability{Domain: p.domain, Available: p.Available(), Reason: p.reason}
}

// Diagnose returns RiskLabelUnavailable for any input when the pipeline is
// unavailable. Otherwise the vector length is checked before scaling.
func (p *FeaturePipeline) Diagnose(features domain.FeatureVector) (domain.RiskLabel, error) {
	if !p.Available() {
		return domain.RiskLabelUnavailable, nil
	}
	if err := p.schema.CheckLength(features); err != nil {
		return "", err
	}

	scaled, err := p.scaler.Transform(features)
	if err != nil {
		return "", fmt.Errorf("%w: %s scaler: %v", domain.ErrPredictionFailed, p.domain, err)
	}
	class, err := p.classifier.Predict(scaled)
	if err != nil {
		return "", fmt.Errorf("%w: %s model: %v", domain.ErrPredictionFailed, p.domain, err)
	}
	label, err := domain.RiskLabelFromClass(class)
	if err != nil {
		return "", fmt.Errorf("%s model: %w", p.domain, err)
	}
	return label, nil
}
