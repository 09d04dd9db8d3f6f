// Package perf owns the cost/trace metadata pass (§4.8) and the
// PerfSnapshot JSON shape the perf-report collaborator consumes (§6).
package perf

import (
	"sort"

	"github.com/Chic-lang/Chic-sub010/pkg/mir"
)

// Normalize rewrites a module's perf metadata in place after lowering:
// entries for functions that no longer exist are dropped, tracepoints
// without an explicit budget inherit the matching cost entry, and both
// lists end up sorted by function name so output is deterministic.
func Normalize(mod *mir.MirModule) {
	if mod.Perf == nil {
		return
	}
	live := make(map[string]bool, len(mod.Functions))
	for _, fn := range mod.Functions {
		live[fn.Name] = true
	}

	costs := mod.Perf.Costs[:0]
	for _, c := range mod.Perf.Costs {
		if live[c.Function] {
			costs = append(costs, c)
		}
	}
	mod.Perf.Costs = costs

	costByFn := make(map[string]*mir.CostModel, len(costs))
	for i := range costs {
		costByFn[costs[i].Function] = &costs[i]
	}

	tps := mod.Perf.Tracepoints[:0]
	for _, tp := range mod.Perf.Tracepoints {
		if !live[tp.Function] {
			continue
		}
		if tp.Budget == nil {
			if c, ok := costByFn[tp.Function]; ok {
				budget := *c
				tp.Budget = &budget
			}
		}
		tps = append(tps, tp)
	}
	mod.Perf.Tracepoints = tps

	sort.Slice(mod.Perf.Tracepoints, func(i, j int) bool {
		return mod.Perf.Tracepoints[i].Function < mod.Perf.Tracepoints[j].Function
	})
	sort.Slice(mod.Perf.Costs, func(i, j int) bool {
		return mod.Perf.Costs[i].Function < mod.Perf.Costs[j].Function
	})
}
