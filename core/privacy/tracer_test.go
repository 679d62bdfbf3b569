package privacy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTrace() OperationTrace {
	return OperationTrace{
		PC:           4,
		Opcode:       "SSTORE",
		Depth:        1,
		GasRemaining: 90_000,
		GasCost:      20_000,
		Stack:        [][]byte{{0x01}, {0x02}},
		Memory:       []byte{0xaa, 0xbb},
		Storage:      map[string][]byte{"00": {0x2a}},
	}
}

func TestDebugTracerFullDetail(t *testing.T) {
	tracer := NewDebugTracer(FullTraceOptions)
	tracer.TraceOperation(sampleTrace())

	traces := tracer.Traces()
	require.Len(t, traces, 1)
	require.Equal(t, sampleTrace(), traces[0])
}

func TestDebugTracerTrimsExcludedDetail(t *testing.T) {
	tracer := NewDebugTracer(TraceOptions{TraceStack: true})
	tracer.TraceOperation(sampleTrace())

	trace := tracer.Traces()[0]
	require.NotNil(t, trace.Stack)
	require.Nil(t, trace.Memory)
	require.Nil(t, trace.Storage)
	require.Equal(t, "SSTORE", trace.Opcode)
}

func TestGroupMembership(t *testing.T) {
	group := &PrivacyGroup{ID: "g", Members: []string{"alice", "bob"}}
	require.True(t, group.HasMember("alice"))
	require.False(t, group.HasMember("carol"))

	dir := NewMemoryDirectory(group)
	found, ok := dir.GroupByID("g")
	require.True(t, ok)
	require.Equal(t, group, found)
	_, ok = dir.GroupByID("other")
	require.False(t, ok)
}
