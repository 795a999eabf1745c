package services

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"

	"disease-diagnosis-service/internal/core/domain"
)

// DiagnosisService routes a diagnosis request to the pipeline of its domain.
type DiagnosisService struct {
	pipelines map[domain.Domain]*FeaturePipeline
	reports   []domain.LoadReport
}

// NewDiagnosisService registers one pipeline per domain. Domains without a
// pipeline are registered as unavailable so every known domain answers.
func NewDiagnosisService(pipelines ...*FeaturePipeline) (*DiagnosisService, error) {
	s := &DiagnosisService{pipelines: make(map[domain.Domain]*FeaturePipeline, len(pipelines))}
	for _, p := range pipelines {
		if p == nil {
			continue
		}
		if _, dup := s.pipelines[p.Domain()]; dup {
			return nil, fmt.Errorf("duplicate pipeline for domain %s", p.Domain())
		}
		s.pipelines[p.Domain()] = p
	}
	for _, d := range domain.Domains() {
		if _, ok := s.pipelines[d]; ok {
			continue
		}
		p, err := UnavailablePipeline(d, "no pipeline configured")
		if err != nil {
			return nil, err
		}
		s.pipelines[d] = p
	}
	return s, nil
}

func (s *DiagnosisService) Diagnose(_ context.Context, d domain.Domain, features domain.FeatureVector) (domain.RiskLabel, error) {
	p, err := s.pipeline(d)
	if err != nil {
		return "", err
	}
	return p.Diagnose(features)
}

func (s *DiagnosisService) Schema(d domain.Domain) (domain.Schema, error) {
	p, err := s.pipeline(d)
	if err != nil {
		return domain.Schema{}, err
	}
	return p.Schema(), nil
}

func (s *DiagnosisService) Availability(d domain.Domain) (domain.Availability, error) {
	p, err := s.pipeline(d)
	if err != nil {
		return domain.Availability{}, err
	}
	return p.Availability(), nil
}

// AvailabilityAll reports every domain in presentation order.
func (s *DiagnosisService) AvailabilityAll() []domain.Availability {
	out := make([]domain.Availability, 0, len(s.pipelines))
	for _, d := range domain.Domains() {
		out = append(out, s.pipelines[d].Availability())
	}
	return out
}

// AvailableDomains returns the sorted names of domains that can serve.
func (s *DiagnosisService) AvailableDomains() []string {
	available := sets.New[string]()
	for d, p := range s.pipelines {
		if p.Available() {
			available.Insert(string(d))
		}
	}
	return sets.List(available)
}

// LoadReports returns the artifact load reports gathered at startup.
func (s *DiagnosisService) LoadReports() []domain.LoadReport {
	out := make([]domain.LoadReport, len(s.reports))
	copy(out, s.reports)
	return out
}

func (s *DiagnosisService) pipeline(d domain.Domain) (*FeaturePipeline, error) {
	p, ok := s.pipelines[d]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, d)
	}
	return p, nil
}
