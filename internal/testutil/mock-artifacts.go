package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"disease-diagnosis-service/internal/core/domain"
)

// MockArtifactStore is a mock of ArtifactStore.
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Load(ctx context.Context, path string) (*domain.LoadedArtifact, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoadedArtifact), args.Error(1)
}

// MockScaler is a mock of Scaler.
type MockScaler struct {
	mock.Mock
	Info domain.ArtifactMeta
}

func (m *MockScaler) Meta() domain.ArtifactMeta {
	return m.Info
}

func (m *MockScaler) Transform(features domain.FeatureVector) (domain.FeatureVector, error) {
	args := m.Called(features)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.FeatureVector), args.Error(1)
}

// MockClassifier is a mock of Classifier.
type MockClassifier struct {
	mock.Mock
	Info domain.ArtifactMeta
}

func (m *MockClassifier) Meta() domain.ArtifactMeta {
	return m.Info
}

func (m *MockClassifier) Predict(features domain.FeatureVector) (int, error) {
	args := m.Called(features)
	return args.Int(0), args.Error(1)
}

// MockLoadReportRepo is a mock of LoadReportRepository.
type MockLoadReportRepo struct {
	mock.Mock
}

func (m *MockLoadReportRepo) SaveAll(ctx context.Context, reports []domain.LoadReport) error {
	args := m.Called(ctx, reports)
	return args.Error(0)
}

func (m *MockLoadReportRepo) ListRecent(ctx context.Context, limit int) ([]domain.LoadReport, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoadReport), args.Error(1)
}

func (m *MockLoadReportRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
