package domain

import "errors"

// ============================================================================
// Artifact Errors
// ============================================================================

var (
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrArtifactCorrupt  = errors.New("artifact is corrupt or in an incompatible format")
)

// ============================================================================
// Diagnosis Errors
// ============================================================================

// Caller errors
var (
	ErrUnknownDomain  = errors.New("unknown diagnosis domain")
	ErrSchemaMismatch = errors.New("feature vector does not match domain schema")
	ErrInvalidFeature = errors.New("invalid feature value")
	ErrMissingFeature = errors.New("missing feature value")
)

// Inference errors
var (
	ErrUnexpectedClass  = errors.New("classifier returned a class outside {0, 1}")
	ErrPredictionFailed = errors.New("prediction failed")
)
