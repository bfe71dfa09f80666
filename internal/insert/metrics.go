package insert

import (
	"time"

	"github.com/mresende/go-weave/pkg/interfaces"
)

// NoOpMetrics returns a metrics recorder that drops every observation.
func NoOpMetrics() interfaces.EmbedMetrics {
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) ObserveEmbedDuration(string, time.Duration) {}

func (noopMetrics) IncrementEmbedError(string) {}
