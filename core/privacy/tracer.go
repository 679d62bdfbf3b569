package privacy

import "veilchain/core/gas"

// TraceOptions selects which frame details a tracer captures per operation.
type TraceOptions struct {
	TraceStorage bool
	TraceMemory  bool
	TraceStack   bool
}

// FullTraceOptions captures everything. Simulated calls run with full detail
// since their traces are the only artifact the caller gets back.
var FullTraceOptions = TraceOptions{TraceStorage: true, TraceMemory: true, TraceStack: true}

// OperationTrace is one executed operation as seen by a tracer.
type OperationTrace struct {
	PC           uint64
	Opcode       string
	Depth        int
	GasRemaining gas.Gas
	GasCost      gas.Gas
	Stack        [][]byte
	Memory       []byte
	Storage      map[string][]byte
}

// Tracer observes operations as the processor executes them.
type Tracer interface {
	TraceOperation(trace OperationTrace)
}

// DebugTracer records every traced operation, trimmed to its options.
type DebugTracer struct {
	opts   TraceOptions
	traces []OperationTrace
}

// NewDebugTracer builds a recording tracer with the given detail level.
func NewDebugTracer(opts TraceOptions) *DebugTracer {
	return &DebugTracer{opts: opts}
}

// TraceOperation appends the operation, dropping the detail classes the
// options exclude.
func (t *DebugTracer) TraceOperation(trace OperationTrace) {
	if !t.opts.TraceStack {
		trace.Stack = nil
	}
	if !t.opts.TraceMemory {
		trace.Memory = nil
	}
	if !t.opts.TraceStorage {
		trace.Storage = nil
	}
	t.traces = append(t.traces, trace)
}

// Traces returns the recorded operations in execution order.
func (t *DebugTracer) Traces() []OperationTrace {
	return t.traces
}
