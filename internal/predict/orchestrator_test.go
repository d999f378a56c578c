package predict

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heartrisk/internal/domain"
)

// fakeImageScorer and fakeTabularScorer return fixed scores or errors.
type fakeImageScorer struct {
	score      float64
	confidence *float64
	err        error
	delay      time.Duration

	mu    sync.Mutex
	calls int
}

func (f *fakeImageScorer) ScoreImage(ctx context.Context, _ []byte) (domain.ModelScore, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return domain.ModelScore{}, ctx.Err()
		}
	}
	if f.err != nil {
		return domain.ModelScore{}, f.err
	}
	return domain.ModelScore{Score: f.score, Confidence: f.confidence}, nil
}

type fakeTabularScorer struct {
	score float64
	err   error
	delay time.Duration

	mu    sync.Mutex
	calls int
}

func (f *fakeTabularScorer) ScoreTabular(ctx context.Context, _ map[string]float64) (domain.ModelScore, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return domain.ModelScore{}, ctx.Err()
		}
	}
	if f.err != nil {
		return domain.ModelScore{}, f.err
	}
	return domain.ModelScore{Score: f.score}, nil
}

func fullFeatures() map[string]float64 {
	return map[string]float64{
		"age": 54, "sex": 1, "cp": 2, "trestbps": 130, "chol": 246,
		"fbs": 0, "thalach": 150, "exang": 0, "oldpeak": 1.4,
	}
}

func newOrchestrator(img *fakeImageScorer, tab *fakeTabularScorer) *Orchestrator {
	var imageScorer domain.ImageScorer
	var tabularScorer domain.TabularScorer
	if img != nil {
		imageScorer = img
	}
	if tab != nil {
		tabularScorer = tab
	}
	return NewOrchestrator(NewRegistry(imageScorer, tabularScorer, time.Second))
}

func TestEvaluate_ImageOnly(t *testing.T) {
	t.Parallel()

	conf := 91.5
	orch := newOrchestrator(&fakeImageScorer{score: 83.2, confidence: &conf}, &fakeTabularScorer{score: 10})
	in, err := domain.NewImageInput([]byte{0xff})
	require.NoError(t, err)

	v, err := orch.Evaluate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 83.2, v.CombinedScore)
	assert.Equal(t, domain.RiskHigh, v.Level)
	require.Len(t, v.Components, 1)
	result, ok := v.Components[domain.SourceImage]
	require.True(t, ok)
	assert.Equal(t, 83.2, result.Score)
	require.NotNil(t, result.Confidence)
	assert.Equal(t, conf, *result.Confidence)
}

func TestEvaluate_TabularOnly(t *testing.T) {
	t.Parallel()

	img := &fakeImageScorer{score: 99}
	orch := newOrchestrator(img, &fakeTabularScorer{score: 42.5})
	in, err := domain.NewTabularInput(fullFeatures())
	require.NoError(t, err)

	v, err := orch.Evaluate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 42.5, v.CombinedScore)
	assert.Equal(t, domain.RiskMedium, v.Level)
	require.Len(t, v.Components, 1)
	_, ok := v.Components[domain.SourceTabular]
	assert.True(t, ok)
	assert.Equal(t, 0, img.calls, "image source must not run for tabular input")
}

func TestEvaluate_Combined_BothModalities(t *testing.T) {
	t.Parallel()

	orch := newOrchestrator(&fakeImageScorer{score: 80}, &fakeTabularScorer{score: 50})
	in, err := domain.NewCombinedInput([]byte{0xff}, fullFeatures())
	require.NoError(t, err)

	v, err := orch.Evaluate(context.Background(), in)
	require.NoError(t, err)
	// 0.6*80 + 0.4*50 = 68
	assert.Equal(t, 68.0, v.CombinedScore)
	assert.Equal(t, domain.RiskMedium, v.Level)
	require.Len(t, v.Components, 2)
	assert.Equal(t, 80.0, v.Components[domain.SourceImage].Score)
	assert.Equal(t, 50.0, v.Components[domain.SourceTabular].Score)
}

func TestEvaluate_Combined_LevelBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		image, tab   float64
		wantScore    float64
		wantLevel    domain.RiskLevel
	}{
		{"exactly 70 is High", 70, 70, 70.0, domain.RiskHigh},
		{"exactly 40 is Medium", 40, 40, 40.0, domain.RiskMedium},
		{"just under 40 is Low", 39.99, 39.99, 39.99, domain.RiskLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch := newOrchestrator(&fakeImageScorer{score: tt.image}, &fakeTabularScorer{score: tt.tab})
			in, err := domain.NewCombinedInput([]byte{0xff}, fullFeatures())
			require.NoError(t, err)

			v, err := orch.Evaluate(context.Background(), in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, v.CombinedScore)
			assert.Equal(t, tt.wantLevel, v.Level)
		})
	}
}

func TestEvaluate_Combined_SingleModality(t *testing.T) {
	t.Parallel()

	t.Run("image only", func(t *testing.T) {
		tab := &fakeTabularScorer{score: 10}
		orch := newOrchestrator(&fakeImageScorer{score: 55}, tab)
		in, err := domain.NewCombinedInput([]byte{0xff}, nil)
		require.NoError(t, err)

		v, err := orch.Evaluate(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, 55.0, v.CombinedScore)
		assert.Equal(t, domain.RiskMedium, v.Level)
		require.Len(t, v.Components, 1)
		assert.Equal(t, 0, tab.calls, "absent modality contributes nothing")
	})

	t.Run("tabular only", func(t *testing.T) {
		img := &fakeImageScorer{score: 99}
		orch := newOrchestrator(img, &fakeTabularScorer{score: 30})
		in, err := domain.NewCombinedInput(nil, fullFeatures())
		require.NoError(t, err)

		v, err := orch.Evaluate(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, 30.0, v.CombinedScore)
		assert.Equal(t, domain.RiskLow, v.Level)
		assert.Equal(t, 0, img.calls)
	})
}

func TestEvaluate_SourceFailureAborts(t *testing.T) {
	t.Parallel()

	t.Run("image scorer down under combined input", func(t *testing.T) {
		orch := newOrchestrator(
			&fakeImageScorer{err: domain.ErrModelUnavailable},
			&fakeTabularScorer{score: 50},
		)
		in, err := domain.NewCombinedInput([]byte{0xff}, fullFeatures())
		require.NoError(t, err)

		_, err = orch.Evaluate(context.Background(), in)
		var unavailable *domain.UnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, domain.SourceImage, unavailable.Source)
	})

	t.Run("tabular scorer down", func(t *testing.T) {
		orch := newOrchestrator(
			&fakeImageScorer{score: 80},
			&fakeTabularScorer{err: errors.New("boom")},
		)
		in, err := domain.NewCombinedInput([]byte{0xff}, fullFeatures())
		require.NoError(t, err)

		_, err = orch.Evaluate(context.Background(), in)
		var unavailable *domain.UnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, domain.SourceTabular, unavailable.Source)
	})

	t.Run("model not loaded", func(t *testing.T) {
		orch := newOrchestrator(nil, &fakeTabularScorer{score: 50})
		in, err := domain.NewImageInput([]byte{0xff})
		require.NoError(t, err)

		_, err = orch.Evaluate(context.Background(), in)
		var unavailable *domain.UnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, domain.SourceImage, unavailable.Source)
	})

	t.Run("bad input is a validation error, not an outage", func(t *testing.T) {
		orch := newOrchestrator(&fakeImageScorer{err: domain.ErrBadInput}, &fakeTabularScorer{score: 50})
		in, err := domain.NewImageInput([]byte{0x00})
		require.NoError(t, err)

		_, err = orch.Evaluate(context.Background(), in)
		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}

func TestEvaluate_Combined_OrderIndependent(t *testing.T) {
	t.Parallel()

	// Whichever source finishes first, the joined result is identical.
	for _, delays := range []struct{ image, tabular time.Duration }{
		{image: 30 * time.Millisecond, tabular: 0},
		{image: 0, tabular: 30 * time.Millisecond},
	} {
		orch := newOrchestrator(
			&fakeImageScorer{score: 80, delay: delays.image},
			&fakeTabularScorer{score: 50, delay: delays.tabular},
		)
		in, err := domain.NewCombinedInput([]byte{0xff}, fullFeatures())
		require.NoError(t, err)

		v, err := orch.Evaluate(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, 68.0, v.CombinedScore)
	}
}

func TestEvaluate_ConcurrentCalls(t *testing.T) {
	t.Parallel()

	orch := newOrchestrator(&fakeImageScorer{score: 80}, &fakeTabularScorer{score: 50})
	in, err := domain.NewCombinedInput([]byte{0xff}, fullFeatures())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := orch.Evaluate(context.Background(), in)
			assert.NoError(t, err)
			assert.Equal(t, 68.0, v.CombinedScore)
		}()
	}
	wg.Wait()
}
