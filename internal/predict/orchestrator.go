package predict

import (
	"context"

	"golang.org/x/sync/errgroup"

	"heartrisk/internal/domain"
)

// Weights applied when both modalities contribute to a combined score. The
// image modality is the primary diagnostic signal.
const (
	imageWeight   = 0.6
	tabularWeight = 0.4
)

// Orchestrator decides which sources to invoke for an input, combines their
// scores, and derives the final categorical level. It is stateless and safe
// for concurrent use.
type Orchestrator struct {
	registry *Registry
}

// NewOrchestrator creates an Orchestrator over the given source registry.
func NewOrchestrator(registry *Registry) *Orchestrator {
	return &Orchestrator{registry: registry}
}

// Evaluate produces a verdict for the input.
//
// Image-only and tabular-only inputs map directly to that source's result.
// A combined input with both modalities invokes both sources concurrently
// and blends their scores 60/40 in favor of the image; with only one
// modality present that source stands alone — no neutral score is
// substituted for the absent one. A failure of any invoked source aborts
// the whole evaluation; degrading to the surviving modality is the caller's
// decision to make by resubmitting, not a runtime fallback.
func (o *Orchestrator) Evaluate(ctx context.Context, in domain.PredictionInput) (*domain.Verdict, error) {
	switch in.Kind {
	case domain.InputImage:
		return o.single(ctx, o.registry.Image(), in)
	case domain.InputTabular:
		return o.single(ctx, o.registry.Tabular(), in)
	case domain.InputCombined:
		return o.combined(ctx, in)
	default:
		return nil, domain.ErrValidation("no valid prediction inputs provided")
	}
}

func (o *Orchestrator) single(ctx context.Context, src Source, in domain.PredictionInput) (*domain.Verdict, error) {
	result, err := src.Score(ctx, in)
	if err != nil {
		return nil, err
	}
	return &domain.Verdict{
		CombinedScore: result.Score,
		Level:         result.Level,
		Components:    map[domain.SourceKind]domain.SourceResult{src.Kind(): result},
	}, nil
}

func (o *Orchestrator) combined(ctx context.Context, in domain.PredictionInput) (*domain.Verdict, error) {
	hasImage, hasTabular := in.HasImage(), in.HasTabular()

	switch {
	case hasImage && hasTabular:
		var imageResult, tabularResult domain.SourceResult

		// The two invocations are independent; join on both before combining.
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			imageResult, err = o.registry.Image().Score(gctx, in)
			return err
		})
		g.Go(func() error {
			var err error
			tabularResult, err = o.registry.Tabular().Score(gctx, in)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		score := domain.Round2(imageWeight*imageResult.Score + tabularWeight*tabularResult.Score)
		return &domain.Verdict{
			CombinedScore: score,
			Level:         domain.LevelForScore(score),
			Components: map[domain.SourceKind]domain.SourceResult{
				domain.SourceImage:   imageResult,
				domain.SourceTabular: tabularResult,
			},
		}, nil

	case hasImage:
		return o.single(ctx, o.registry.Image(), in)
	case hasTabular:
		return o.single(ctx, o.registry.Tabular(), in)
	default:
		return nil, domain.ErrValidation("no valid prediction inputs provided")
	}
}
