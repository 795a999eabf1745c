package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"disease-diagnosis-service/internal/core/domain"
	"disease-diagnosis-service/internal/testutil"
)

func TestDiagnosisService_RoutesByDomain(t *testing.T) {
	heartScaler := new(testutil.MockScaler)
	heartClf := new(testutil.MockClassifier)
	heartScaler.On("Transform", mock.Anything).Return(domain.FeatureVector{1}, nil)
	heartClf.On("Predict", mock.Anything).Return(1, nil)

	diabetesScaler := new(testutil.MockScaler)
	diabetesClf := new(testutil.MockClassifier)
	diabetesScaler.On("Transform", mock.Anything).Return(domain.FeatureVector{0}, nil)
	diabetesClf.On("Predict", mock.Anything).Return(0, nil)

	svc, err := NewDiagnosisService(
		mustPipeline(t, domain.DomainHeart, heartScaler, heartClf),
		mustPipeline(t, domain.DomainDiabetes, diabetesScaler, diabetesClf),
	)
	require.NoError(t, err)

	label, err := svc.Diagnose(context.Background(), domain.DomainHeart, heartVector())
	assert.NoError(t, err)
	assert.Equal(t, domain.RiskLabelAtRisk, label)

	label, err = svc.Diagnose(context.Background(), domain.DomainDiabetes, domain.FeatureVector{1, 85, 66, 29, 0, 26.6, 0.351, 31})
	assert.NoError(t, err)
	assert.Equal(t, domain.RiskLabelNoRisk, label)

	// No pipeline was supplied for parkinson.
	label, err = svc.Diagnose(context.Background(), domain.DomainParkinson, make(domain.FeatureVector, 22))
	assert.NoError(t, err)
	assert.Equal(t, domain.RiskLabelUnavailable, label)

	assert.Equal(t, []string{"diabetes", "heart"}, svc.AvailableDomains())
}

func TestDiagnosisService_UnknownDomain(t *testing.T) {
	svc, err := NewDiagnosisService()
	require.NoError(t, err)

	for _, features := range []domain.FeatureVector{nil, heartVector(), make(domain.FeatureVector, 22)} {
		_, err := svc.Diagnose(context.Background(), domain.Domain("kidney"), features)
		assert.ErrorIs(t, err, domain.ErrUnknownDomain)
	}

	_, err = svc.Schema(domain.Domain(""))
	assert.ErrorIs(t, err, domain.ErrUnknownDomain)
	_, err = svc.Availability(domain.Domain("HEART"))
	assert.ErrorIs(t, err, domain.ErrUnknownDomain)
}

func TestDiagnosisService_AvailabilityAll(t *testing.T) {
	p, err := UnavailablePipeline(domain.DomainHeart, "model not_found")
	require.NoError(t, err)
	svc, err := NewDiagnosisService(p)
	require.NoError(t, err)

	all := svc.AvailabilityAll()
	require.Len(t, all, 3)
	assert.Equal(t, domain.DomainHeart, all[0].Domain)
	assert.Equal(t, "model not_found", all[0].Reason)
	assert.Equal(t, domain.DomainDiabetes, all[1].Domain)
	assert.Equal(t, domain.DomainParkinson, all[2].Domain)
	for _, a := range all {
		assert.False(t, a.Available)
	}
	assert.Empty(t, svc.AvailableDomains())
}

func TestNewDiagnosisService_DuplicateDomain(t *testing.T) {
	a, _ := UnavailablePipeline(domain.DomainHeart, "")
	b, _ := UnavailablePipeline(domain.DomainHeart, "")

	_, err := NewDiagnosisService(a, b)
	assert.Error(t, err)
}
