package predict

import (
	"time"

	"heartrisk/internal/domain"
)

const defaultScorerTimeout = 10 * time.Second

// Registry holds the prediction sources constructed at startup. It is
// immutable after construction and safe for concurrent use; there is no
// hot-reload. A nil scorer leaves that modality registered but permanently
// unavailable, mirroring a model that failed to load.
type Registry struct {
	image   Source
	tabular Source
}

// NewRegistry builds a Registry over the given scorer collaborators.
// timeout bounds each scorer invocation; zero selects the default.
func NewRegistry(image domain.ImageScorer, tabular domain.TabularScorer, timeout time.Duration) *Registry {
	if timeout <= 0 {
		timeout = defaultScorerTimeout
	}
	return &Registry{
		image:   &imageSource{scorer: image, timeout: timeout},
		tabular: &tabularSource{scorer: tabular, timeout: timeout},
	}
}

// Image returns the image-modality source.
func (r *Registry) Image() Source { return r.image }

// Tabular returns the tabular-modality source.
func (r *Registry) Tabular() Source { return r.tabular }
