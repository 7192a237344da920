// Package agents runs a fixed set of concurrent agents against shared memory.
//
// A Group starts every agent behind a common start gate so that they contend
// from the same instant, collects their failures into a MultiError, and
// reports progress through the observability package. It is the harness
// used by the integration tests and the example programs.
package agents
