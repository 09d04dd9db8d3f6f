// Package metaobj writes the relocatable metadata object (§4.5): a
// platform container (Mach-O, ELF, or COFF) carrying the textual
// `.chic.meta` section and the `.chic.reflect` JSON section, with a
// `__chic_metadata` symbol covering the metadata payload. The containers
// are hand-encoded with encoding/binary; Go's debug/* packages only parse
// these formats, they cannot emit them.
package metaobj

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Chic-lang/Chic-sub010/pkg/mir"
)

// Kind is the artifact kind recorded in the metadata header.
type Kind string

const (
	KindStaticLibrary  Kind = "static-library"
	KindDynamicLibrary Kind = "dynamic-library"
	KindExecutable     Kind = "executable"
)

// Input bundles everything the metadata payload is built from. Docs covers
// declarations the MIR itself doesn't carry prose for (namespaces, types,
// interfaces); function docs come from the functions directly.
type Input struct {
	Module          *mir.MirModule
	TargetRequested string
	TargetCanonical string
	Kind            Kind
	Docs            map[string]string
}

// BuildMetadata renders the `.chic.meta` textual payload, terminated by a
// null byte (§8 property 10). Entry order is fixed so payload bytes are
// reproducible build to build.
func BuildMetadata(in Input, caches *Caches) []byte {
	var sb strings.Builder
	sb.WriteString("Chic Metadata\n")
	fmt.Fprintf(&sb, "target-requested=%s\n", in.TargetRequested)
	fmt.Fprintf(&sb, "target-canonical=%s\n", in.TargetCanonical)
	fmt.Fprintf(&sb, "kind=%s\n", in.Kind)

	mod := in.Module

	docNames := make([]string, 0, len(in.Docs))
	for name := range in.Docs {
		docNames = append(docNames, name)
	}
	sort.Strings(docNames)
	for _, name := range docNames {
		fmt.Fprintf(&sb, "doc:%s=%s\n", name, escapeDoc(in.Docs[name]))
	}
	for _, fn := range mod.Functions {
		if fn.Doc == "" {
			continue
		}
		fmt.Fprintf(&sb, "doc:%s=%s\n", fn.Name, escapeDoc(fn.Doc))
	}

	for _, fn := range mod.Functions {
		if fn.InlineMode != "" {
			fmt.Fprintf(&sb, "inline:%s=%s\n", fn.Name, fn.InlineMode)
		}
	}

	if mod.Attributes.NoStd {
		sb.WriteString("profile=no_std\n")
	} else {
		sb.WriteString("profile=std\n")
	}
	if mod.Attributes.GlobalAllocator != "" {
		fmt.Fprintf(&sb, "global_allocator=%s\n", mod.Attributes.GlobalAllocator)
	}
	if mod.Attributes.GlobalAllocatorTarget != "" {
		fmt.Fprintf(&sb, "global_allocator_target=%s\n", mod.Attributes.GlobalAllocatorTarget)
	}

	for _, exp := range mod.Exports {
		if exp.Category != mir.ExportFunction {
			continue
		}
		fmt.Fprintf(&sb, "export:%s=%s\n", exp.Symbol, symbolize(exp.Symbol))
	}

	for _, fn := range mod.Functions {
		frag := caches.Function(fn.Name, func() string { return functionFragment(fn) })
		sb.WriteString(frag)
	}

	if mod.Perf != nil {
		for _, tp := range mod.Perf.Tracepoints {
			fmt.Fprintf(&sb, "trace:%s=id=%d;label=%s;level=%s", tp.Function, tp.TraceId, tp.Label, levelName(tp.Level))
			if tp.Budget != nil {
				sb.WriteString(costFields(tp.Budget))
			}
			sb.WriteString("\n")
		}
		for i := range mod.Perf.Costs {
			c := &mod.Perf.Costs[i]
			line := strings.TrimPrefix(costFields(c), ";")
			for _, tp := range mod.Perf.Tracepoints {
				if tp.Function == c.Function {
					line += fmt.Sprintf(";trace_id=%d;trace_label=%s", tp.TraceId, tp.Label)
					break
				}
			}
			fmt.Fprintf(&sb, "cost:%s=%s\n", c.Function, line)
		}
	}

	sb.WriteByte(0)
	return []byte(sb.String())
}

// functionFragment renders the per-function lines the metadata cache
// memoizes across builds: extern bindings, lending annotations, defaults.
func functionFragment(fn *mir.MirFunction) string {
	var sb strings.Builder
	if fn.Extern != nil {
		e := fn.Extern
		fmt.Fprintf(&sb, "extern:%s=convention=%s;binding=%s;library=%s;alias=%s;optional=%t;charset=%s\n",
			fn.Name, e.Convention, e.Binding, e.Library, e.Alias, e.Optional, e.Charset)
	}
	if len(fn.LendsReturn) > 0 {
		fmt.Fprintf(&sb, "lends_return:%s=%s\n", fn.Name, strings.Join(fn.LendsReturn, ","))
	}
	for _, da := range fn.DefaultArgs {
		fmt.Fprintf(&sb, "default_arg:%s#%d=%s", fn.Name, da.Index, da.Param)
		switch {
		case da.Thunk != "":
			fmt.Fprintf(&sb, "|thunk:%s;meta=%d", da.Thunk, da.MetaLen)
		case da.Internal != "":
			fmt.Fprintf(&sb, "|internal=%s", da.Internal)
		default:
			fmt.Fprintf(&sb, "|const:%s", da.Const)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func costFields(c *mir.CostModel) string {
	var sb strings.Builder
	if c.CpuUs != nil {
		fmt.Fprintf(&sb, ";cpu_us=%g", *c.CpuUs)
	}
	if c.MemBytes != nil {
		fmt.Fprintf(&sb, ";mem_bytes=%d", *c.MemBytes)
	}
	if c.GpuUs != nil {
		fmt.Fprintf(&sb, ";gpu_us=%g", *c.GpuUs)
	}
	return sb.String()
}

func levelName(l mir.TraceLevel) string {
	if l == mir.TraceLevelDebug {
		return "debug"
	}
	return "perf"
}

// escapeDoc joins a multiline doc comment into a single metadata line.
func escapeDoc(doc string) string {
	return strings.ReplaceAll(doc, "\n", "\\n")
}

// symbolize flattens a "::"-qualified name into its linker symbol, the
// same mangling the LLVM backend applies.
func symbolize(name string) string {
	r := strings.NewReplacer("::", "__", ".", "__", "<", "_", ">", "_", ",", "_", " ", "")
	return r.Replace(name)
}
