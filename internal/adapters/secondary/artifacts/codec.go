package artifacts

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"disease-diagnosis-service/internal/core/domain"
)

// FormatV1 is the only on-disk artifact format this service reads.
const FormatV1 = "diagnosis-artifact/v1"

type envelope struct {
	Format       string          `json:"format"`
	Kind         string          `json:"kind"`
	Domain       string          `json:"domain"`
	FeatureNames []string        `json:"feature_names"`
	NumFeatures  int             `json:"n_features"`
	Classes      []int           `json:"classes"`
	Params       json.RawMessage `json:"params"`
}

// Decode deserializes an artifact blob. Every failure wraps
// domain.ErrArtifactCorrupt.
func Decode(data []byte) (domain.Artifact, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, corrupt("parse envelope: %v", err)
	}
	meta, err := env.meta()
	if err != nil {
		return nil, err
	}
	if len(env.Params) == 0 {
		return nil, corrupt("%s: params missing", meta.Kind)
	}

	switch meta.Kind {
	case domain.ArtifactKindStandardScaler:
		return decodeStandardScaler(meta, env.Params)
	case domain.ArtifactKindMinMaxScaler:
		return decodeMinMaxScaler(meta, env.Params)
	}

	if env.Classes != nil && !slices.Equal(env.Classes, []int{0, 1}) {
		return nil, corrupt("%s: classes must be [0 1], got %v", meta.Kind, env.Classes)
	}
	switch meta.Kind {
	case domain.ArtifactKindLogisticRegression:
		return decodeLogisticRegression(meta, env.Params)
	case domain.ArtifactKindLinearSVC:
		return decodeLinearSVC(meta, env.Params)
	case domain.ArtifactKindDecisionTree:
		return decodeDecisionTree(meta, env.Params)
	}
	return nil, corrupt("unsupported kind %q", meta.Kind)
}

func (e envelope) meta() (domain.ArtifactMeta, error) {
	if e.Format != FormatV1 {
		return domain.ArtifactMeta{}, corrupt("unsupported format %q, want %q", e.Format, FormatV1)
	}
	if e.Kind == "" {
		return domain.ArtifactMeta{}, corrupt("kind missing")
	}
	if e.NumFeatures <= 0 {
		return domain.ArtifactMeta{}, corrupt("n_features must be positive, got %d", e.NumFeatures)
	}
	if len(e.FeatureNames) > 0 && len(e.FeatureNames) != e.NumFeatures {
		return domain.ArtifactMeta{}, corrupt("%d feature names for %d features", len(e.FeatureNames), e.NumFeatures)
	}

	meta := domain.ArtifactMeta{
		Kind:         domain.ArtifactKind(e.Kind),
		NumFeatures:  e.NumFeatures,
		FeatureNames: e.FeatureNames,
	}
	if e.Domain != "" {
		d, err := domain.ParseDomain(e.Domain)
		if err != nil {
			return domain.ArtifactMeta{}, corrupt("%v", err)
		}
		meta.Domain = d
	}
	return meta, nil
}

func decodeParams(meta domain.ArtifactMeta, raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return corrupt("%s params: %v", meta.Kind, err)
	}
	return nil
}

// checkVector verifies a parameter vector has one finite entry per feature.
func checkVector(meta domain.ArtifactMeta, name string, v []float64) error {
	if len(v) != meta.NumFeatures {
		return corrupt("%s: %s has %d entries, want %d", meta.Kind, name, len(v), meta.NumFeatures)
	}
	for i, x := range v {
		if !finite(x) {
			return corrupt("%s: %s[%d] is not finite", meta.Kind, name, i)
		}
	}
	return nil
}

func checkInput(meta domain.ArtifactMeta, features domain.FeatureVector) error {
	if len(features) != meta.NumFeatures {
		return fmt.Errorf("%w: %s expects %d features, got %d", domain.ErrSchemaMismatch, meta.Kind, meta.NumFeatures, len(features))
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrArtifactCorrupt, fmt.Sprintf(format, args...))
}
