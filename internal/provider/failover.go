package provider

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nunajera/portfolio-backend/internal"
)

// Result is a successful reply and the candidate that produced it.
type Result struct {
	Text     string
	Provider string
	Model    string
}

// Failover tries an ordered list of equivalent providers until one
// answers.
type Failover struct {
	candidates []ChatProvider
	logger     *zap.Logger
}

func NewFailover(logger *zap.Logger, candidates ...ChatProvider) *Failover {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Failover{candidates: candidates, logger: logger}
}

func (f *Failover) Len() int {
	return len(f.candidates)
}

// Models lists the candidates as "provider/model" in try order.
func (f *Failover) Models() []string {
	out := make([]string, 0, len(f.candidates))
	for _, c := range f.candidates {
		out = append(out, c.Name()+"/"+c.Model())
	}
	return out
}

// Reply returns the first successful answer. Every failure is logged and
// the next candidate tried; when all fail the last error is returned
// inside a *internal.ProviderError. A done context stops the sequence.
func (f *Failover) Reply(ctx context.Context, prompt string) (Result, error) {
	if len(f.candidates) == 0 {
		return Result{}, internal.ErrNotConfigured
	}

	var (
		lastErr   error
		lastModel string
		attempts  int
	)
	for _, c := range f.candidates {
		attempts++
		text, err := c.Reply(ctx, prompt)
		if err == nil {
			if attempts > 1 {
				f.logger.Info("failover candidate succeeded",
					zap.String("provider", c.Name()),
					zap.String("model", c.Model()),
					zap.Int("attempt", attempts))
			}
			return Result{Text: text, Provider: c.Name(), Model: c.Model()}, nil
		}

		lastErr, lastModel = err, c.Model()
		f.logger.Warn("model candidate failed",
			zap.String("provider", c.Name()),
			zap.String("model", c.Model()),
			zap.String("kind", Classify(err).String()),
			zap.Error(err))

		if ctxErr := ctx.Err(); ctxErr != nil {
			lastErr = fmt.Errorf("%w (last error: %v)", ctxErr, err)
			break
		}
	}

	return Result{}, &internal.ProviderError{
		Kind:     Classify(lastErr),
		Model:    lastModel,
		Attempts: attempts,
		Err:      lastErr,
	}
}
