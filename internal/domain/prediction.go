package domain

import "math"

// RiskLevel is the categorical band derived from a risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Risk-level thresholds. Lower bounds are inclusive: exactly 70 is High,
// exactly 40 is Medium.
const (
	highRiskThreshold   = 70.0
	mediumRiskThreshold = 40.0
)

// LevelForScore maps a risk score in [0,100] to its categorical level.
func LevelForScore(score float64) RiskLevel {
	switch {
	case score >= highRiskThreshold:
		return RiskHigh
	case score >= mediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// SourceKind identifies one prediction modality.
type SourceKind string

const (
	SourceImage   SourceKind = "image"
	SourceTabular SourceKind = "tabular"
)

// InputKind tags the variant of a PredictionInput.
type InputKind string

const (
	InputImage    InputKind = "image"
	InputTabular  InputKind = "tabular"
	InputCombined InputKind = "combined"
)

// TabularFeatureNames lists the required tabular features in model order
// (Cleveland heart-disease feature set).
var TabularFeatureNames = []string{
	"age", "sex", "cp", "trestbps", "chol", "fbs", "thalach", "exang", "oldpeak",
}

// PredictionInput is a closed tagged variant validated at the boundary, so
// downstream logic never sees a half-formed modality. Construct it through
// NewImageInput, NewTabularInput, or NewCombinedInput.
type PredictionInput struct {
	Kind    InputKind
	Image   []byte
	Tabular map[string]float64
}

// HasImage reports whether the input carries image bytes.
func (in PredictionInput) HasImage() bool { return len(in.Image) > 0 }

// HasTabular reports whether the input carries tabular features.
func (in PredictionInput) HasTabular() bool { return in.Tabular != nil }

// NewImageInput builds an image-only input.
func NewImageInput(image []byte) (PredictionInput, error) {
	if len(image) == 0 {
		return PredictionInput{}, ErrValidation("image data is required")
	}
	return PredictionInput{Kind: InputImage, Image: image}, nil
}

// NewTabularInput builds a tabular-only input. All nine features must be
// present; the first missing feature is named in the error.
func NewTabularInput(features map[string]float64) (PredictionInput, error) {
	if err := validateFeatures(features); err != nil {
		return PredictionInput{}, err
	}
	return PredictionInput{Kind: InputTabular, Tabular: features}, nil
}

// NewCombinedInput builds a combined input from optional sub-inputs. At
// least one modality must be supplied. A tabular map that is present but
// incomplete is rejected rather than silently degraded to image-only.
func NewCombinedInput(image []byte, features map[string]float64) (PredictionInput, error) {
	if len(image) == 0 && features == nil {
		return PredictionInput{}, ErrValidation("no valid prediction inputs provided")
	}
	if features != nil {
		if err := validateFeatures(features); err != nil {
			return PredictionInput{}, err
		}
	}
	in := PredictionInput{Kind: InputCombined}
	if len(image) > 0 {
		in.Image = image
	}
	if features != nil {
		in.Tabular = features
	}
	return in, nil
}

func validateFeatures(features map[string]float64) error {
	if features == nil {
		return ErrValidation("tabular features are required")
	}
	for _, name := range TabularFeatureNames {
		v, ok := features[name]
		if !ok {
			return ErrValidation("missing required feature: %s", name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrValidation("feature %s is not a finite number", name)
		}
	}
	return nil
}

// ModelScore is the raw output of one model-invocation collaborator.
type ModelScore struct {
	Score      float64  // risk probability scaled to [0,100]
	Confidence *float64 // nil when the model reports no confidence
}

// SourceResult is the outcome of one invoked prediction source.
type SourceResult struct {
	Score      float64
	Level      RiskLevel
	Confidence *float64
	Extra      map[string]any
}

// Verdict is the orchestrator's final combined assessment for one request.
// It is immutable once returned; persistence is the caller's concern.
type Verdict struct {
	CombinedScore float64
	Level         RiskLevel
	Components    map[SourceKind]SourceResult
}

// Round2 rounds a score to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
