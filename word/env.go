package word

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/a2y-d5l/go-shmsync/observability"
)

// Mode selects how an agent waits for a word to change.
type Mode int

const (
	// ModeAuto defers to the process-wide capability probe.
	ModeAuto Mode = iota
	// ModeBlock parks the agent on the platform wait primitive.
	ModeBlock
	// ModeSpin re-checks the word without ever parking.
	ModeSpin
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeBlock:
		return "block"
	case ModeSpin:
		return "spin"
	default:
		return "unknown"
	}
}

// config holds the tunables set through functional options.
type config struct {
	mode Mode
	log  observability.Logger
}

func defaultConfig() config {
	return config{mode: ModeAuto}
}

// Option configures a Word (New, FromBytes) or the process-wide probe
// (Configure).
type Option func(*config)

// WithMode sets the wait mode. On a word it overrides the probe for every
// wait on that word; passed to Configure it forces the probe's answer.
func WithMode(m Mode) Option { return func(c *config) { c.mode = m } }

// WithLogger sets the logger the probe reports its decision to. Words ignore it.
func WithLogger(l observability.Logger) Option { return func(c *config) { c.log = l } }

var (
	globalMu  sync.Mutex
	global    = defaultConfig()
	probeDone bool
)

// Configure sets the inputs of the capability probe. It must be called before
// the first wait in the process; once the probe has run it returns
// ErrIllegalState and changes nothing.
func Configure(opts ...Option) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if probeDone {
		return fmt.Errorf("%w: wait mode already resolved", ErrIllegalState)
	}
	for _, opt := range opts {
		opt(&global)
	}
	return nil
}

var blockingAllowed = sync.OnceValue(func() bool {
	globalMu.Lock()
	cfg := global
	probeDone = true
	globalMu.Unlock()

	allowed, reason := probe(cfg.mode)

	log := cfg.log
	if log == nil {
		log = observability.Default()
	}
	log.Debug("wait mode resolved",
		observability.Mode(cfg.mode.String()),
		slog.Bool("blocking", allowed),
		slog.String("reason", reason),
		slog.String("goos", runtime.GOOS),
	)
	return allowed
})

// BlockingAllowed reports whether agents in this process may park on the
// platform wait primitive. It is computed on first call and never again.
func BlockingAllowed() bool {
	return blockingAllowed()
}

// probe decides the process-wide wait mode. A forced mode wins. Hosts that run
// every goroutine on one thread cannot park an agent without stalling the
// agents that would wake it. Everywhere else the platform primitive is asked
// for a zero-timeout wait on a scratch word, which must come back timed out.
func probe(mode Mode) (bool, string) {
	switch mode {
	case ModeBlock:
		return true, "configured"
	case ModeSpin:
		return false, "configured"
	}

	switch runtime.GOOS {
	case "js", "wasip1":
		return false, "single-threaded host"
	}

	var scratch int32
	res, err := platformWait32(&scratch, 0, 0)
	if err != nil {
		return false, "platform wait unavailable: " + err.Error()
	}
	if res != TimedOut {
		return false, "platform wait returned " + res.String()
	}
	return true, "platform wait available"
}
