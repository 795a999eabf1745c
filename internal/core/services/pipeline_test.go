package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"disease-diagnosis-service/internal/core/domain"
	"disease-diagnosis-service/internal/testutil"
)

func heartVector() domain.FeatureVector {
	return domain.FeatureVector{63, 1, 3, 145, 233, 1, 0, 150, 0, 2.3, 0, 0, 1}
}

func TestFeaturePipeline_Diagnose(t *testing.T) {
	scaled := domain.FeatureVector{0.1}
	for class, want := range map[int]domain.RiskLabel{0: domain.RiskLabelNoRisk, 1: domain.RiskLabelAtRisk} {
		scaler := new(testutil.MockScaler)
		clf := new(testutil.MockClassifier)
		scaler.On("Transform", heartVector()).Return(scaled, nil)
		clf.On("Predict", scaled).Return(class, nil)

		p, err := NewFeaturePipeline(domain.DomainHeart, scaler, clf)
		require.NoError(t, err)
		assert.True(t, p.Available())

		label, err := p.Diagnose(heartVector())
		assert.NoError(t, err)
		assert.Equal(t, want, label)
		scaler.AssertExpectations(t)
		clf.AssertExpectations(t)
	}
}

func TestFeaturePipeline_UnavailableWhenHalfMissing(t *testing.T) {
	scaler := new(testutil.MockScaler)
	clf := new(testutil.MockClassifier)

	for name, p := range map[string]*FeaturePipeline{
		"no scaler": mustPipeline(t, domain.DomainDiabetes, nil, clf),
		"no model":  mustPipeline(t, domain.DomainDiabetes, scaler, nil),
		"neither":   mustPipeline(t, domain.DomainDiabetes, nil, nil),
	} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, p.Available())
			assert.NotEmpty(t, p.Availability().Reason)
			for _, features := range []domain.FeatureVector{nil, {1}, {6, 148, 72, 35, 0, 33.6, 0.627, 50}} {
				label, err := p.Diagnose(features)
				assert.NoError(t, err)
				assert.Equal(t, domain.RiskLabelUnavailable, label)
			}
		})
	}
	scaler.AssertNotCalled(t, "Transform", mock.Anything)
	clf.AssertNotCalled(t, "Predict", mock.Anything)
}

func TestFeaturePipeline_SchemaMismatchBeforeScaler(t *testing.T) {
	scaler := new(testutil.MockScaler)
	clf := new(testutil.MockClassifier)
	p := mustPipeline(t, domain.DomainHeart, scaler, clf)

	_, err := p.Diagnose(domain.FeatureVector{63, 1, 3})
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
	scaler.AssertNotCalled(t, "Transform", mock.Anything)
}

func TestFeaturePipeline_SurfacesInferenceErrors(t *testing.T) {
	scaler := new(testutil.MockScaler)
	clf := new(testutil.MockClassifier)
	scaler.On("Transform", mock.Anything).Return(nil, errors.New("boom"))
	p := mustPipeline(t, domain.DomainHeart, scaler, clf)

	_, err := p.Diagnose(heartVector())
	assert.ErrorIs(t, err, domain.ErrPredictionFailed)

	scaler = new(testutil.MockScaler)
	scaler.On("Transform", mock.Anything).Return(heartVector(), nil)
	clf.On("Predict", mock.Anything).Return(0, errors.New("boom")).Once()
	clf.On("Predict", mock.Anything).Return(2, nil).Once()
	p = mustPipeline(t, domain.DomainHeart, scaler, clf)

	_, err = p.Diagnose(heartVector())
	assert.ErrorIs(t, err, domain.ErrPredictionFailed)

	_, err = p.Diagnose(heartVector())
	assert.ErrorIs(t, err, domain.ErrUnexpectedClass)
}

func TestFeaturePipeline_Idempotent(t *testing.T) {
	scaler := new(testutil.MockScaler)
	clf := new(testutil.MockClassifier)
	scaler.On("Transform", mock.Anything).Return(domain.FeatureVector{1}, nil)
	clf.On("Predict", mock.Anything).Return(1, nil)
	p := mustPipeline(t, domain.DomainHeart, scaler, clf)

	first, err := p.Diagnose(heartVector())
	require.NoError(t, err)
	second, err := p.Diagnose(heartVector())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNewFeaturePipeline_UnknownDomain(t *testing.T) {
	_, err := NewFeaturePipeline(domain.Domain("kidney"), nil, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownDomain)
}

func mustPipeline(t *testing.T, d domain.Domain, scaler domain.Scaler, clf domain.Classifier) *FeaturePipeline {
	t.Helper()
	p, err := NewFeaturePipeline(d, scaler, clf)
	require.NoError(t, err)
	return p
}
