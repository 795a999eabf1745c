package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/iter"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"disease-diagnosis-service/internal/core/domain"
	output "disease-diagnosis-service/internal/core/ports/output"
)

// PipelineLoader builds pipelines from artifacts at startup. Every load
// failure is converted into an unavailable pipeline plus a load report.
type PipelineLoader struct {
	store      output.ArtifactStore
	instanceID uuid.UUID
	now        func() time.Time
}

func NewPipelineLoader(store output.ArtifactStore, instanceID uuid.UUID) *PipelineLoader {
	return &PipelineLoader{store: store, instanceID: instanceID, now: time.Now}
}

type pipelineResult struct {
	pipeline *FeaturePipeline
	reports  []domain.LoadReport
	err      error
}

// LoadAll loads every domain of the layout in parallel and returns the
// assembled service. Domains missing from the layout are unavailable.
func (l *PipelineLoader) LoadAll(ctx context.Context, layout map[domain.Domain]domain.ArtifactPaths) (*DiagnosisService, error) {
	domains := make([]domain.Domain, 0, len(layout))
	for d := range layout {
		if _, err := domain.SchemaFor(d); err != nil {
			return nil, err
		}
		domains = append(domains, d)
	}
	slices.Sort(domains)

	results := iter.Map(domains, func(d *domain.Domain) pipelineResult {
		p, reports, err := l.Load(ctx, *d, layout[*d])
		return pipelineResult{pipeline: p, reports: reports, err: err}
	})

	pipelines := make([]*FeaturePipeline, 0, len(results))
	var reports []domain.LoadReport
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		pipelines = append(pipelines, r.pipeline)
		reports = append(reports, r.reports...)
	}

	svc, err := NewDiagnosisService(pipelines...)
	if err != nil {
		return nil, err
	}
	svc.reports = reports
	return svc, nil
}

// Load loads the scaler and model of one domain. Both are attempted so the
// reports describe the whole pair even when the first one fails.
// The returned error is non-nil only for an unknown domain.
func (l *PipelineLoader) Load(ctx context.Context, d domain.Domain, paths domain.ArtifactPaths) (*FeaturePipeline, []domain.LoadReport, error) {
	schema, err := domain.SchemaFor(d)
	if err != nil {
		return nil, nil, err
	}

	scalerArtifact, scalerReport := l.loadArtifact(ctx, schema, domain.ArtifactRoleScaler, paths.Scaler)
	modelArtifact, modelReport := l.loadArtifact(ctx, schema, domain.ArtifactRoleModel, paths.Model)
	reports := []domain.LoadReport{scalerReport, modelReport}

	var scaler domain.Scaler
	var classifier domain.Classifier
	if scalerArtifact != nil && modelArtifact != nil {
		scaler = scalerArtifact.(domain.Scaler)
		classifier = modelArtifact.(domain.Classifier)
	}

	p, err := NewFeaturePipeline(d, scaler, classifier)
	if err != nil {
		return nil, nil, err
	}
	if !p.Available() {
		p.reason = unavailableReason(reports)
	}
	return p, reports, nil
}

func (l *PipelineLoader) loadArtifact(ctx context.Context, schema domain.Schema, role domain.ArtifactRole, path string) (domain.Artifact, domain.LoadReport) {
	report := domain.LoadReport{
		ID:         uuid.New(),
		InstanceID: l.instanceID,
		Domain:     schema.Domain,
		Role:       role,
		Path:       path,
		LoadedAt:   l.now(),
	}
	logger := log.WithFields(log.Fields{
		"domain": schema.Domain,
		"role":   role,
		"path":   path,
	})

	if path == "" {
		report.Status = domain.LoadStatusSkipped
		report.Detail = "no path configured"
		logger.Warn("artifact path not configured")
		return nil, report
	}

	loaded, err := l.store.Load(ctx, path)
	if err == nil {
		report.Checksum = loaded.Checksum
		report.Size = loaded.Size
		report.NumFeatures = loaded.Artifact.Meta().NumFeatures
		err = checkArtifact(schema, role, loaded.Artifact)
	}
	if err != nil {
		report.Status = statusOf(err)
		report.Detail = err.Error()
		logger.WithError(err).WithField("status", report.Status).Warn("artifact unavailable")
		return nil, report
	}

	report.Status = domain.LoadStatusLoaded
	logger.WithFields(log.Fields{
		"kind":     loaded.Artifact.Meta().Kind,
		"checksum": loaded.Checksum,
	}).Info("artifact loaded")
	return loaded.Artifact, report
}

// checkArtifact verifies capability, domain and feature layout agree with
// the schema the pipeline will enforce.
func checkArtifact(schema domain.Schema, role domain.ArtifactRole, a domain.Artifact) error {
	meta := a.Meta()
	switch role {
	case domain.ArtifactRoleScaler:
		if _, ok := a.(domain.Scaler); !ok {
			return fmt.Errorf("%w: %s artifact cannot act as a scaler", domain.ErrArtifactCorrupt, meta.Kind)
		}
	case domain.ArtifactRoleModel:
		if _, ok := a.(domain.Classifier); !ok {
			return fmt.Errorf("%w: %s artifact cannot act as a classifier", domain.ErrArtifactCorrupt, meta.Kind)
		}
	}
	if meta.Domain != "" && meta.Domain != schema.Domain {
		return fmt.Errorf("%w: artifact is for domain %s, expected %s", domain.ErrArtifactCorrupt, meta.Domain, schema.Domain)
	}
	if meta.NumFeatures != schema.Len() {
		return fmt.Errorf("%w: artifact expects %d features, %s has %d", domain.ErrArtifactCorrupt, meta.NumFeatures, schema.Domain, schema.Len())
	}
	if len(meta.FeatureNames) > 0 && !slices.Equal(meta.FeatureNames, schema.Names()) {
		return fmt.Errorf("%w: artifact feature order differs from %s schema", domain.ErrArtifactCorrupt, schema.Domain)
	}
	return nil
}

func statusOf(err error) domain.LoadStatus {
	switch {
	case errors.Is(err, domain.ErrArtifactNotFound):
		return domain.LoadStatusNotFound
	case errors.Is(err, domain.ErrArtifactCorrupt):
		return domain.LoadStatusCorrupt
	}
	return domain.LoadStatusFailed
}

func unavailableReason(reports []domain.LoadReport) string {
	for _, r := range reports {
		if r.Status != domain.LoadStatusLoaded {
			return fmt.Sprintf("%s %s: %s", r.Role, r.Status, r.Detail)
		}
	}
	return "artifacts not loaded"
}

// LoadErrors aggregates the failed reports into one error, nil when every
// artifact loaded.
func LoadErrors(reports []domain.LoadReport) error {
	var errs []error
	for _, r := range reports {
		if r.Status == domain.LoadStatusLoaded {
			continue
		}
		errs = append(errs, fmt.Errorf("%s %s (%s): %s", r.Domain, r.Role, r.Path, r.Detail))
	}
	return utilerrors.NewAggregate(errs)
}
