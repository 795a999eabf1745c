package artifacts

import (
	"encoding/json"
	"math"

	"disease-diagnosis-service/internal/core/domain"
)

type linearParams struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
	Threshold *float64  `json:"threshold"`
}

type linearModel struct {
	meta      domain.ArtifactMeta
	coef      []float64
	intercept float64
}

func decodeLinear(meta domain.ArtifactMeta, raw json.RawMessage) (linearModel, linearParams, error) {
	var p linearParams
	if err := decodeParams(meta, raw, &p); err != nil {
		return linearModel{}, p, err
	}
	if err := checkVector(meta, "coef", p.Coef); err != nil {
		return linearModel{}, p, err
	}
	if !finite(p.Intercept) {
		return linearModel{}, p, corrupt("%s: intercept is not finite", meta.Kind)
	}
	return linearModel{meta: meta, coef: p.Coef, intercept: p.Intercept}, p, nil
}

func (m linearModel) Meta() domain.ArtifactMeta {
	return m.meta
}

func (m linearModel) decision(features domain.FeatureVector) (float64, error) {
	if err := checkInput(m.meta, features); err != nil {
		return 0, err
	}
	z := m.intercept
	for i, x := range features {
		z += m.coef[i] * x
	}
	return z, nil
}

// logisticRegression predicts 1 when sigmoid(w·x + b) exceeds threshold.
type logisticRegression struct {
	linearModel
	threshold float64
}

func decodeLogisticRegression(meta domain.ArtifactMeta, raw json.RawMessage) (*logisticRegression, error) {
	lm, p, err := decodeLinear(meta, raw)
	if err != nil {
		return nil, err
	}
	threshold := 0.5
	if p.Threshold != nil {
		threshold = *p.Threshold
		if !(threshold > 0 && threshold < 1) {
			return nil, corrupt("%s: threshold must be in (0, 1), got %v", meta.Kind, threshold)
		}
	}
	return &logisticRegression{linearModel: lm, threshold: threshold}, nil
}

func (m *logisticRegression) Predict(features domain.FeatureVector) (int, error) {
	z, err := m.decision(features)
	if err != nil {
		return 0, err
	}
	if 1/(1+math.Exp(-z)) > m.threshold {
		return 1, nil
	}
	return 0, nil
}

// linearSVC predicts 1 when the decision value w·x + b is positive.
type linearSVC struct {
	linearModel
}

func decodeLinearSVC(meta domain.ArtifactMeta, raw json.RawMessage) (*linearSVC, error) {
	lm, p, err := decodeLinear(meta, raw)
	if err != nil {
		return nil, err
	}
	if p.Threshold != nil {
		return nil, corrupt("%s: threshold is not supported", meta.Kind)
	}
	return &linearSVC{linearModel: lm}, nil
}

func (m *linearSVC) Predict(features domain.FeatureVector) (int, error) {
	z, err := m.decision(features)
	if err != nil {
		return 0, err
	}
	if z > 0 {
		return 1, nil
	}
	return 0, nil
}
