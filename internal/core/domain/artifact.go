package domain

import (
	"time"

	"github.com/google/uuid"
)

type ArtifactKind string

const (
	ArtifactKindStandardScaler     ArtifactKind = "standard_scaler"
	ArtifactKindMinMaxScaler       ArtifactKind = "min_max_scaler"
	ArtifactKindLogisticRegression ArtifactKind = "logistic_regression"
	ArtifactKindLinearSVC          ArtifactKind = "linear_svc"
	ArtifactKindDecisionTree       ArtifactKind = "decision_tree"
)

// ArtifactMeta is the self-description an artifact carries on disk.
// Domain and FeatureNames may be empty when the producer did not record them.
type ArtifactMeta struct {
	Kind         ArtifactKind
	Domain       Domain
	NumFeatures  int
	FeatureNames []string
}

// Artifact is a deserialized, pre-trained object. Implementations are
// immutable after load and safe for concurrent use.
type Artifact interface {
	Meta() ArtifactMeta
}

// Scaler normalizes a raw feature vector. It never mutates its input.
type Scaler interface {
	Artifact
	Transform(features FeatureVector) (FeatureVector, error)
}

// Classifier returns a binary class (0 or 1) for a scaled feature vector.
type Classifier interface {
	Artifact
	Predict(features FeatureVector) (int, error)
}

// LoadedArtifact pairs an artifact with facts about the blob it came from.
type LoadedArtifact struct {
	Artifact Artifact
	Path     string
	Checksum string
	Size     int64
}

type ArtifactRole string

const (
	ArtifactRoleScaler ArtifactRole = "scaler"
	ArtifactRoleModel  ArtifactRole = "model"
)

type LoadStatus string

const (
	LoadStatusLoaded   LoadStatus = "loaded"
	LoadStatusNotFound LoadStatus = "not_found"
	LoadStatusCorrupt  LoadStatus = "corrupt"
	LoadStatusFailed   LoadStatus = "failed"
	LoadStatusSkipped  LoadStatus = "skipped"
)

// LoadReport records the outcome of loading one artifact at startup.
type LoadReport struct {
	ID          uuid.UUID
	InstanceID  uuid.UUID
	Domain      Domain
	Role        ArtifactRole
	Path        string
	Status      LoadStatus
	Detail      string
	Checksum    string
	Size        int64
	NumFeatures int
	LoadedAt    time.Time
}

// ArtifactPaths locates the scaler and model for one domain.
type ArtifactPaths struct {
	Scaler string
	Model  string
}
