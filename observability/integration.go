package observability

import (
	"context"
	"time"
)

// AgentLogger reports the lifecycle of one agent of a run.
type AgentLogger struct {
	Logger
}

// NewAgentLogger binds logger to the run and agent identifiers carried by
// ctx (see ContextWithRun and ContextWithAgent).
func NewAgentLogger(ctx context.Context, logger Logger) *AgentLogger {
	return &AgentLogger{Logger: logger.WithContext(ctx)}
}

// LogStart logs the agent entering its body.
func (al *AgentLogger) LogStart() {
	al.Debug("agent started", Operation("agent-start"))
}

// LogDone logs the agent leaving its body, with its run time and outcome.
func (al *AgentLogger) LogDone(elapsed time.Duration, err error) {
	if err != nil {
		al.Error("agent failed",
			Operation("agent-done"),
			Duration("agent_duration", elapsed),
			ErrorField(err),
		)
		return
	}
	al.Debug("agent finished",
		Operation("agent-done"),
		Duration("agent_duration", elapsed),
	)
}
