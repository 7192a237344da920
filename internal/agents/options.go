package agents

import "github.com/a2y-d5l/go-shmsync/observability"

type config struct {
	logger  observability.Logger
	metrics *observability.SyncMetrics
	gate    *Latch
}

func defaultConfig() config {
	return config{logger: observability.Default()}
}

// Option configures a Group.
type Option func(*config)

// WithLogger sets the logger agents report their start and outcome to.
func WithLogger(l observability.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records agent starts and outcomes into m.
func WithMetrics(m *observability.SyncMetrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithStartGate makes the group's agents wait on gate instead of a latch of
// their own. Several groups sharing one gate start together.
func WithStartGate(gate *Latch) Option {
	return func(c *config) { c.gate = gate }
}
