package mir

// TraceLevel tags a tracepoint's verbosity tier.
type TraceLevel int

const (
	TraceLevelPerf TraceLevel = iota
	TraceLevelDebug
)

// Tracepoint is a marker embedded at a function's entry, per §3.
type Tracepoint struct {
	Function string
	Label    string
	TraceId  uint64 // BLAKE3(function || label)[0..8], big-endian
	Level    TraceLevel
	Budget   *CostModel // nil if no explicit budget; normalization may fill it
}

// CostModel is the optional measured/estimated cost attached to a function.
type CostModel struct {
	Function string
	CpuUs    *float64
	GpuUs    *float64
	MemBytes *uint64
}

// PerfMetadata bundles a module's tracepoints and cost entries.
type PerfMetadata struct {
	Tracepoints []Tracepoint
	Costs       []CostModel
}
