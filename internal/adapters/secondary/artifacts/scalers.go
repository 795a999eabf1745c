package artifacts

import (
	"encoding/json"

	"disease-diagnosis-service/internal/core/domain"
)

// standardScaler applies (x - mean) / scale per feature.
type standardScaler struct {
	meta  domain.ArtifactMeta
	mean  []float64
	scale []float64
}

type standardScalerParams struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func decodeStandardScaler(meta domain.ArtifactMeta, raw json.RawMessage) (*standardScaler, error) {
	var p standardScalerParams
	if err := decodeParams(meta, raw, &p); err != nil {
		return nil, err
	}
	if err := checkVector(meta, "mean", p.Mean); err != nil {
		return nil, err
	}
	if err := checkVector(meta, "scale", p.Scale); err != nil {
		return nil, err
	}
	// A constant feature is fitted with scale 0; it passes through centred.
	for i, s := range p.Scale {
		if s == 0 {
			p.Scale[i] = 1
		}
	}
	return &standardScaler{meta: meta, mean: p.Mean, scale: p.Scale}, nil
}

func (s *standardScaler) Meta() domain.ArtifactMeta {
	return s.meta
}

func (s *standardScaler) Transform(features domain.FeatureVector) (domain.FeatureVector, error) {
	if err := checkInput(s.meta, features); err != nil {
		return nil, err
	}
	out := make(domain.FeatureVector, len(features))
	for i, x := range features {
		out[i] = (x - s.mean[i]) / s.scale[i]
	}
	return out, nil
}

// minMaxScaler maps [data_min, data_max] onto feature_range per feature.
type minMaxScaler struct {
	meta   domain.ArtifactMeta
	offset []float64
	factor []float64
	lo     float64
}

type minMaxScalerParams struct {
	DataMin      []float64   `json:"data_min"`
	DataMax      []float64   `json:"data_max"`
	FeatureRange *[2]float64 `json:"feature_range"`
}

func decodeMinMaxScaler(meta domain.ArtifactMeta, raw json.RawMessage) (*minMaxScaler, error) {
	var p minMaxScalerParams
	if err := decodeParams(meta, raw, &p); err != nil {
		return nil, err
	}
	if err := checkVector(meta, "data_min", p.DataMin); err != nil {
		return nil, err
	}
	if err := checkVector(meta, "data_max", p.DataMax); err != nil {
		return nil, err
	}
	lo, hi := 0.0, 1.0
	if p.FeatureRange != nil {
		lo, hi = p.FeatureRange[0], p.FeatureRange[1]
		if !finite(lo) || !finite(hi) || lo >= hi {
			return nil, corrupt("%s: invalid feature_range %v", meta.Kind, *p.FeatureRange)
		}
	}

	factor := make([]float64, meta.NumFeatures)
	for i := range factor {
		span := p.DataMax[i] - p.DataMin[i]
		if span < 0 {
			return nil, corrupt("%s: data_max[%d] < data_min[%d]", meta.Kind, i, i)
		}
		if span == 0 {
			span = 1
		}
		factor[i] = (hi - lo) / span
	}
	return &minMaxScaler{meta: meta, offset: p.DataMin, factor: factor, lo: lo}, nil
}

func (s *minMaxScaler) Meta() domain.ArtifactMeta {
	return s.meta
}

func (s *minMaxScaler) Transform(features domain.FeatureVector) (domain.FeatureVector, error) {
	if err := checkInput(s.meta, features); err != nil {
		return nil, err
	}
	out := make(domain.FeatureVector, len(features))
	for i, x := range features {
		out[i] = (x-s.offset[i])*s.factor[i] + s.lo
	}
	return out, nil
}
