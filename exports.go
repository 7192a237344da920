package shmsync

// Re-export core types from subpackages
import (
	"time"

	"github.com/a2y-d5l/go-shmsync/lock"
	"github.com/a2y-d5l/go-shmsync/semaphore"
	"github.com/a2y-d5l/go-shmsync/word"
)

// Word types
type Int = word.Int
type Word[T Int] = word.Word[T]
type WaitResult = word.WaitResult
type Mode = word.Mode
type Option = word.Option

// Lock types
type Mutex[T Int] = lock.Mutex[T]
type Condition[T Int] = lock.Condition[T]
type Token = lock.Token

// Semaphore types
type Semaphore = semaphore.Semaphore

const (
	OK       = word.OK
	NotEqual = word.NotEqual
	TimedOut = word.TimedOut

	ModeAuto  = word.ModeAuto
	ModeBlock = word.ModeBlock
	ModeSpin  = word.ModeSpin

	Unavailable = semaphore.Unavailable
)

// Forever is the timeout that never elapses.
const Forever time.Duration = word.Forever

// Options
var (
	WithMode   = word.WithMode
	WithLogger = word.WithLogger
)

// Capability probe
var (
	Configure       = word.Configure
	BlockingAllowed = word.BlockingAllowed
)

// Semaphore constructors
var (
	NewSemaphore       = semaphore.New
	NewBinarySemaphore = semaphore.NewBinary
)

// NewWord returns a Word over the cell at p.
func NewWord[T Int](p *T, opts ...Option) (*Word[T], error) {
	return word.New(p, opts...)
}

// WordFromBytes views buf at offset as a Word.
func WordFromBytes[T Int](buf []byte, offset int, opts ...Option) (*Word[T], error) {
	return word.FromBytes[T](buf, offset, opts...)
}

// NewMutex returns a Mutex over w.
func NewMutex[T Int](w *Word[T]) (*Mutex[T], error) {
	return lock.NewMutex(w)
}

// NewCondition returns a Condition over w.
func NewCondition[T Int](w *Word[T]) (*Condition[T], error) {
	return lock.NewCondition(w)
}
