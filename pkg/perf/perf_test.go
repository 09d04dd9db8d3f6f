package perf

import (
	"sort"
	"testing"

	"github.com/Chic-lang/Chic-sub010/pkg/mir"
)

func TestNormalize(t *testing.T) {
	cpu := 7.5
	mod := &mir.MirModule{
		Functions: []*mir.MirFunction{
			{Name: "App::Beta"},
			{Name: "App::Alpha"},
		},
		Perf: &mir.PerfMetadata{
			Tracepoints: []mir.Tracepoint{
				{Function: "App::Beta", Label: "b"},
				{Function: "App::Gone", Label: "g"},
				{Function: "App::Alpha", Label: "a"},
			},
			Costs: []mir.CostModel{
				{Function: "App::Gone", CpuUs: &cpu},
				{Function: "App::Beta", CpuUs: &cpu},
			},
		},
	}
	Normalize(mod)

	// Property 11: tracepoint functions ⊆ live functions, both lists sorted.
	live := map[string]bool{"App::Alpha": true, "App::Beta": true}
	names := make([]string, 0, len(mod.Perf.Tracepoints))
	for _, tp := range mod.Perf.Tracepoints {
		if !live[tp.Function] {
			t.Errorf("tracepoint for dead function %q survived", tp.Function)
		}
		names = append(names, tp.Function)
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("tracepoints unsorted: %v", names)
	}
	costNames := make([]string, 0, len(mod.Perf.Costs))
	for _, c := range mod.Perf.Costs {
		costNames = append(costNames, c.Function)
	}
	if !sort.StringsAreSorted(costNames) {
		t.Errorf("costs unsorted: %v", costNames)
	}

	// Budget defaulting: App::Beta's tracepoint inherits its cost entry.
	for _, tp := range mod.Perf.Tracepoints {
		switch tp.Function {
		case "App::Beta":
			if tp.Budget == nil || tp.Budget.CpuUs == nil || *tp.Budget.CpuUs != cpu {
				t.Error("App::Beta tracepoint did not inherit its cost as budget")
			}
		case "App::Alpha":
			if tp.Budget != nil {
				t.Error("App::Alpha has no cost entry and must keep a nil budget")
			}
		}
	}
}

// TestCompareRegressionGate covers scenario S6: one metric at 12.5 cpu_us
// with budget 10 against a baseline of 10.0 and 1% tolerance yields
// total=2, over_budget=1, regressions=1, and --strict fails.
func TestCompareRegressionGate(t *testing.T) {
	budget := 10.0
	snapshot := &PerfSnapshot{Metrics: []Metric{
		{TraceID: 1, CpuUs: 12.5, Budget: &budget},
	}}
	baseline := &PerfSnapshot{Metrics: []Metric{
		{TraceID: 1, CpuUs: 10.0},
	}}
	sum := Compare(snapshot, baseline, 1.0)
	if sum.Total != 2 {
		t.Errorf("total: %d, want 2", sum.Total)
	}
	if sum.OverBudget != 1 {
		t.Errorf("over_budget: %d, want 1", sum.OverBudget)
	}
	if sum.Regressions != 1 {
		t.Errorf("regressions: %d, want 1", sum.Regressions)
	}
	if !sum.Failed() {
		t.Error("strict run must fail")
	}
}

func TestCompareWithinTolerance(t *testing.T) {
	snapshot := &PerfSnapshot{Metrics: []Metric{{TraceID: 7, CpuUs: 10.4}}}
	baseline := &PerfSnapshot{Metrics: []Metric{{TraceID: 7, CpuUs: 10.0}}}
	sum := Compare(snapshot, baseline, 5.0)
	if sum.Regressions != 0 || sum.OverBudget != 0 || sum.Failed() {
		t.Errorf("within tolerance: %+v", sum)
	}
}

func TestCompareWithoutBaseline(t *testing.T) {
	budget := 1.0
	snapshot := &PerfSnapshot{Metrics: []Metric{{TraceID: 3, CpuUs: 2.0, Budget: &budget}}}
	sum := Compare(snapshot, nil, 0)
	if sum.Total != 1 || sum.OverBudget != 1 || sum.Regressions != 0 {
		t.Errorf("no baseline: %+v", sum)
	}
}
