package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFeatures() map[string]float64 {
	return map[string]float64{
		"age": 54, "sex": 1, "cp": 2, "trestbps": 130, "chol": 246,
		"fbs": 0, "thalach": 150, "exang": 0, "oldpeak": 1.4,
	}
}

func TestLevelForScore_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{0, RiskLow},
		{39.99, RiskLow},
		{40.0, RiskMedium},
		{69.99, RiskMedium},
		{70.0, RiskHigh},
		{100, RiskHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForScore(tt.score), "score %v", tt.score)
	}
}

func TestNewImageInput(t *testing.T) {
	t.Parallel()

	in, err := NewImageInput([]byte{0xff, 0xd8})
	require.NoError(t, err)
	assert.Equal(t, InputImage, in.Kind)
	assert.True(t, in.HasImage())
	assert.False(t, in.HasTabular())

	_, err = NewImageInput(nil)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestNewTabularInput_MissingFeature(t *testing.T) {
	t.Parallel()

	for _, name := range TabularFeatureNames {
		features := validFeatures()
		delete(features, name)

		_, err := NewTabularInput(features)
		require.Error(t, err, "feature %s", name)
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Message, name)
	}
}

func TestNewTabularInput_Valid(t *testing.T) {
	t.Parallel()

	in, err := NewTabularInput(validFeatures())
	require.NoError(t, err)
	assert.Equal(t, InputTabular, in.Kind)
	assert.True(t, in.HasTabular())
}

func TestNewCombinedInput(t *testing.T) {
	t.Parallel()

	t.Run("neither modality fails", func(t *testing.T) {
		_, err := NewCombinedInput(nil, nil)
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
	})

	t.Run("image only", func(t *testing.T) {
		in, err := NewCombinedInput([]byte{1}, nil)
		require.NoError(t, err)
		assert.True(t, in.HasImage())
		assert.False(t, in.HasTabular())
	})

	t.Run("tabular only", func(t *testing.T) {
		in, err := NewCombinedInput(nil, validFeatures())
		require.NoError(t, err)
		assert.False(t, in.HasImage())
		assert.True(t, in.HasTabular())
	})

	t.Run("incomplete tabular rejected even with image present", func(t *testing.T) {
		features := validFeatures()
		delete(features, "oldpeak")

		_, err := NewCombinedInput([]byte{1}, features)
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Message, "oldpeak")
	})
}

func TestRound2(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 68.0, Round2(0.6*80+0.4*50))
	assert.Equal(t, 33.33, Round2(33.3333))
	assert.Equal(t, 72.0, Round2(0.6*80+0.4*60))
}
