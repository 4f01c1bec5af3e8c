package vocab

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Source loads a vocabulary from some backing resource.
type Source interface {
	Load(ctx context.Context) (*Vocabulary, error)
}

// Cached wraps a Source and loads it at most once per process. A failed
// load degrades to an empty vocabulary (nothing protected, everything
// flagged unverified) rather than refusing service; the failure is logged
// once without file contents.
type Cached struct {
	src   Source
	once  sync.Once
	vocab *Vocabulary
}

// NewCached returns a lazily-initialized, process-wide vocabulary cache.
func NewCached(src Source) *Cached {
	return &Cached{src: src}
}

// Vocabulary returns the cached vocabulary, loading it on first use.
func (c *Cached) Vocabulary(ctx context.Context) *Vocabulary {
	c.once.Do(func() {
		v, err := c.src.Load(ctx)
		if err != nil {
			logrus.WithError(err).Warn("vocabulary load failed, degrading to empty vocabulary")
			v = Empty()
		}
		c.vocab = v
	})
	return c.vocab
}
