package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"disease-diagnosis-service/internal/core/domain"
	"disease-diagnosis-service/internal/testutil"
)

func loadedScaler(d domain.Domain, n int) *domain.LoadedArtifact {
	s := &testutil.MockScaler{Info: domain.ArtifactMeta{Kind: domain.ArtifactKindStandardScaler, Domain: d, NumFeatures: n}}
	s.On("Transform", mock.Anything).Return(make(domain.FeatureVector, n), nil)
	return &domain.LoadedArtifact{Artifact: s, Checksum: "abc", Size: 10}
}

func loadedModel(d domain.Domain, n, class int) *domain.LoadedArtifact {
	c := &testutil.MockClassifier{Info: domain.ArtifactMeta{Kind: domain.ArtifactKindLinearSVC, Domain: d, NumFeatures: n}}
	c.On("Predict", mock.Anything).Return(class, nil)
	return &domain.LoadedArtifact{Artifact: c, Checksum: "def", Size: 20}
}

func TestPipelineLoader_Load(t *testing.T) {
	store := new(testutil.MockArtifactStore)
	store.On("Load", mock.Anything, "scaler_heart.json").Return(loadedScaler(domain.DomainHeart, 13), nil)
	store.On("Load", mock.Anything, "heart_disease_model.json").Return(loadedModel(domain.DomainHeart, 13, 1), nil)

	instance := uuid.New()
	p, reports, err := NewPipelineLoader(store, instance).Load(context.Background(), domain.DomainHeart,
		domain.ArtifactPaths{Scaler: "scaler_heart.json", Model: "heart_disease_model.json"})
	require.NoError(t, err)
	assert.True(t, p.Available())

	require.Len(t, reports, 2)
	assert.Equal(t, domain.ArtifactRoleScaler, reports[0].Role)
	assert.Equal(t, domain.ArtifactRoleModel, reports[1].Role)
	for _, r := range reports {
		assert.Equal(t, domain.LoadStatusLoaded, r.Status)
		assert.Equal(t, instance, r.InstanceID)
		assert.Equal(t, 13, r.NumFeatures)
		assert.NotEqual(t, uuid.Nil, r.ID)
	}
	assert.NoError(t, LoadErrors(reports))

	label, err := p.Diagnose(heartVector())
	assert.NoError(t, err)
	assert.Equal(t, domain.RiskLabelAtRisk, label)
}

func TestPipelineLoader_MissingModel(t *testing.T) {
	store := new(testutil.MockArtifactStore)
	store.On("Load", mock.Anything, "scaler_heart.json").Return(loadedScaler(domain.DomainHeart, 13), nil)
	store.On("Load", mock.Anything, "heart_disease_model.json").
		Return(nil, fmt.Errorf("%w: Model/heart_disease_model.json", domain.ErrArtifactNotFound))

	p, reports, err := NewPipelineLoader(store, uuid.New()).Load(context.Background(), domain.DomainHeart,
		domain.ArtifactPaths{Scaler: "scaler_heart.json", Model: "heart_disease_model.json"})
	require.NoError(t, err)
	assert.False(t, p.Available())
	assert.Contains(t, p.Availability().Reason, "not_found")
	assert.Equal(t, domain.LoadStatusLoaded, reports[0].Status)
	assert.Equal(t, domain.LoadStatusNotFound, reports[1].Status)
	assert.Error(t, LoadErrors(reports))

	label, err := p.Diagnose(heartVector())
	assert.NoError(t, err)
	assert.Equal(t, domain.RiskLabelUnavailable, label)
}

func TestPipelineLoader_RejectsMismatchedArtifacts(t *testing.T) {
	cases := map[string]struct {
		scaler *domain.LoadedArtifact
		model  *domain.LoadedArtifact
	}{
		"wrong domain":        {loadedScaler(domain.DomainDiabetes, 13), loadedModel(domain.DomainHeart, 13, 0)},
		"wrong feature count": {loadedScaler(domain.DomainHeart, 13), loadedModel(domain.DomainHeart, 8, 0)},
		"model as scaler":     {loadedModel(domain.DomainHeart, 13, 0), loadedModel(domain.DomainHeart, 13, 0)},
		"scaler as model":     {loadedScaler(domain.DomainHeart, 13), loadedScaler(domain.DomainHeart, 13)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			store := new(testutil.MockArtifactStore)
			store.On("Load", mock.Anything, "s").Return(tc.scaler, nil)
			store.On("Load", mock.Anything, "m").Return(tc.model, nil)

			p, reports, err := NewPipelineLoader(store, uuid.New()).Load(context.Background(), domain.DomainHeart,
				domain.ArtifactPaths{Scaler: "s", Model: "m"})
			require.NoError(t, err)
			assert.False(t, p.Available())

			var corrupt int
			for _, r := range reports {
				if r.Status == domain.LoadStatusCorrupt {
					corrupt++
				}
			}
			assert.Equal(t, 1, corrupt)
		})
	}
}

func TestPipelineLoader_FeatureOrderMismatch(t *testing.T) {
	schema, err := domain.SchemaFor(domain.DomainDiabetes)
	require.NoError(t, err)
	names := schema.Names()
	names[0], names[1] = names[1], names[0]

	scaler := loadedScaler(domain.DomainDiabetes, 8)
	scaler.Artifact.(*testutil.MockScaler).Info.FeatureNames = names

	store := new(testutil.MockArtifactStore)
	store.On("Load", mock.Anything, "s").Return(scaler, nil)
	store.On("Load", mock.Anything, "m").Return(loadedModel(domain.DomainDiabetes, 8, 1), nil)

	p, reports, err := NewPipelineLoader(store, uuid.New()).Load(context.Background(), domain.DomainDiabetes,
		domain.ArtifactPaths{Scaler: "s", Model: "m"})
	require.NoError(t, err)
	assert.False(t, p.Available())
	assert.Equal(t, domain.LoadStatusCorrupt, reports[0].Status)
}

func TestPipelineLoader_LoadAll(t *testing.T) {
	store := new(testutil.MockArtifactStore)
	store.On("Load", mock.Anything, "heart/s").Return(loadedScaler(domain.DomainHeart, 13), nil)
	store.On("Load", mock.Anything, "heart/m").Return(loadedModel(domain.DomainHeart, 13, 0), nil)
	store.On("Load", mock.Anything, "diabetes/s").
		Return(nil, fmt.Errorf("%w: diabetes/s", domain.ErrArtifactNotFound))
	store.On("Load", mock.Anything, "diabetes/m").Return(loadedModel(domain.DomainDiabetes, 8, 1), nil)
	store.On("Load", mock.Anything, "parkinson/s").
		Return(nil, fmt.Errorf("%w: bad json", domain.ErrArtifactCorrupt))
	store.On("Load", mock.Anything, "parkinson/m").Return(loadedModel(domain.DomainParkinson, 22, 1), nil)

	layout := map[domain.Domain]domain.ArtifactPaths{}
	for _, d := range domain.Domains() {
		layout[d] = domain.ArtifactPaths{Scaler: string(d) + "/s", Model: string(d) + "/m"}
	}

	svc, err := NewPipelineLoader(store, uuid.New()).LoadAll(context.Background(), layout)
	require.NoError(t, err)

	assert.Equal(t, []string{"heart"}, svc.AvailableDomains())
	assert.Len(t, svc.LoadReports(), 6)

	label, err := svc.Diagnose(context.Background(), domain.DomainDiabetes, domain.FeatureVector{6, 148, 72, 35, 0, 33.6, 0.627, 50})
	assert.NoError(t, err)
	assert.Equal(t, domain.RiskLabelUnavailable, label)

	label, err = svc.Diagnose(context.Background(), domain.DomainHeart, heartVector())
	assert.NoError(t, err)
	assert.Equal(t, domain.RiskLabelNoRisk, label)

	statuses := map[domain.LoadStatus]int{}
	for _, r := range svc.LoadReports() {
		statuses[r.Status]++
	}
	assert.Equal(t, map[domain.LoadStatus]int{
		domain.LoadStatusLoaded:   4,
		domain.LoadStatusNotFound: 1,
		domain.LoadStatusCorrupt:  1,
	}, statuses)
}

func TestPipelineLoader_SkipsEmptyPaths(t *testing.T) {
	store := new(testutil.MockArtifactStore)

	p, reports, err := NewPipelineLoader(store, uuid.New()).Load(context.Background(), domain.DomainParkinson, domain.ArtifactPaths{})
	require.NoError(t, err)
	assert.False(t, p.Available())
	assert.Equal(t, domain.LoadStatusSkipped, reports[0].Status)
	assert.Equal(t, domain.LoadStatusSkipped, reports[1].Status)
	store.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestPipelineLoader_LoadAllUnknownDomain(t *testing.T) {
	store := new(testutil.MockArtifactStore)

	_, err := NewPipelineLoader(store, uuid.New()).LoadAll(context.Background(),
		map[domain.Domain]domain.ArtifactPaths{"kidney": {Scaler: "s", Model: "m"}})
	assert.ErrorIs(t, err, domain.ErrUnknownDomain)
}
