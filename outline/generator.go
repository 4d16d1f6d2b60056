package outline

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Retry defaults, overridable via deployment configuration.
const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
)

// Generator wraps a generative Client with bounded retries, a fixed
// inter-attempt delay, and fallback to the demo synthesizer once the retry
// budget is exhausted. The generative path never surfaces an error to the
// caller: a valid request always yields a valid outline.
type Generator struct {
	client     Client
	fallback   *DemoSynthesizer
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewGenerator builds a Generator. maxRetries below 1 and negative retryDelay
// are clamped to the defaults.
func NewGenerator(client Client, fallback *DemoSynthesizer, maxRetries int, retryDelay time.Duration, logger *zap.Logger) *Generator {
	if maxRetries < 1 {
		maxRetries = DefaultMaxRetries
	}
	if retryDelay < 0 {
		retryDelay = DefaultRetryDelay
	}
	return &Generator{
		client:     client,
		fallback:   fallback,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// Generate tries the generative client up to maxRetries times, sleeping
// retryDelay between attempts, and falls back to the demo synthesizer when
// all attempts fail. The only error it can return is a ValidationError on the
// request itself, surfaced through the fallback synthesizer.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*PresentationOutline, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if g.client == nil {
		g.logger.Info("no llm client configured, using demo outline")
		return g.fallback.Synthesize(req)
	}

	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		g.logger.Info("attempting llm outline generation",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", g.maxRetries))

		result, err := g.client.GenerateOutline(ctx, req)
		if err == nil {
			if attempt > 1 {
				g.logger.Info("llm generation succeeded after retry", zap.Int("attempt", attempt))
			}
			return result, nil
		}

		g.logger.Warn("llm attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", g.maxRetries),
			zap.Error(err))

		if attempt < g.maxRetries {
			if !g.sleep(ctx) {
				// Context gone; remaining attempts would fail the same way.
				break
			}
		}
	}

	g.logger.Warn("all llm attempts failed, falling back to demo outline",
		zap.Int("max_retries", g.maxRetries))
	return g.fallback.Synthesize(req)
}

// sleep waits retryDelay without holding a worker thread. Returns false when
// the context was canceled first.
func (g *Generator) sleep(ctx context.Context) bool {
	if g.retryDelay == 0 {
		return true
	}
	timer := time.NewTimer(g.retryDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
