package llm

import (
	"context"
	"errors"
	"time"

	"github.com/MikeSquared-Agency/typecast/internal/metrics"
)

type instrumented struct {
	next    Completer
	backend string
}

// Instrument records latency and outcome of every call made through c.
func Instrument(c Completer, backend string) Completer {
	return &instrumented{next: c, backend: backend}
}

func (i *instrumented) Complete(ctx context.Context, credential string, messages []Message) (string, error) {
	start := time.Now()
	text, err := i.next.Complete(ctx, credential, messages)
	metrics.InferenceLatency.WithLabelValues(i.backend).Observe(time.Since(start).Seconds())

	outcome := "ok"
	var te *TransportError
	switch {
	case errors.As(err, &te) && te.Timeout():
		outcome = "timeout"
	case err != nil:
		outcome = "error"
	}
	metrics.InferenceRequests.WithLabelValues(i.backend, outcome).Inc()
	return text, err
}
