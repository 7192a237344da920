// Package observability provides the structured logging and metrics used by
// the go-shmsync probe, agent harness and examples.
//
// The synchronization primitives themselves never log.
//
// # Structured Logging
//
// Logging is built on Go's standard slog package:
//
//	logger := observability.NewLogger(observability.LoggerConfig{
//		Level:  slog.LevelDebug,
//		Format: observability.JSON,
//		Output: os.Stdout,
//	})
//
//	logger.Info("round trip finished",
//		observability.Primitive("condition"),
//		observability.AgentCount(3),
//		observability.Duration("elapsed", time.Since(start)),
//	)
//
// The capability probe reports its one-time decision at debug level to the
// logger passed with word.WithLogger, or to Default.
//
// # Context-Aware Logging
//
// WithContext picks up the run and agent identifiers attached with
// ContextWithRun and ContextWithAgent:
//
//	ctx = observability.ContextWithAgent(observability.ContextWithRun(ctx, "run-1"), 2)
//	logger.WithContext(ctx).Info("agent started") // Includes run_id and agent_id
//
// # Agent Lifecycle
//
// AgentLogger binds a logger to the identifiers in a context and reports an
// agent's start and outcome:
//
//	al := observability.NewAgentLogger(ctx, logger)
//	al.LogStart()
//	al.LogDone(time.Since(start), err)
//
// # Metrics
//
// SyncMetrics records acquisitions, wait times and agent lifecycles into any
// MetricsCollector. NewSyncMetrics(nil) uses the package-level collector, an
// InMemoryMetricsCollector unless replaced with SetDefaultMetricsCollector.
package observability
