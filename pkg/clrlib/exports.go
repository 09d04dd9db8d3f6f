package clrlib

import "github.com/Chic-lang/Chic-sub010/pkg/mir"

// ExportsFromModule collects the manifest export list from a module's
// export records, preserving the "::"-qualified names the lowering pass
// assigned while walking namespaces.
func ExportsFromModule(mod *mir.MirModule) []ExportEntry {
	out := make([]ExportEntry, 0, len(mod.Exports))
	for _, e := range mod.Exports {
		out = append(out, ExportEntry{Name: e.Symbol, Kind: exportKind(e.Category)})
	}
	return out
}

func exportKind(c mir.ExportCategory) string {
	switch c {
	case mir.ExportFunction:
		return "Function"
	case mir.ExportStruct:
		return "Struct"
	case mir.ExportEnum:
		return "Enum"
	case mir.ExportClass:
		return "Class"
	case mir.ExportInterface:
		return "Interface"
	case mir.ExportUnion:
		return "Union"
	case mir.ExportExtension:
		return "Extension"
	default:
		return "Other"
	}
}

// VTablesFromModule summarizes the module's class vtables for the manifest.
func VTablesFromModule(mod *mir.MirModule) []VTableSummary {
	out := make([]VTableSummary, 0, len(mod.ClassVTables))
	for _, vt := range mod.ClassVTables {
		s := VTableSummary{Name: vt.Class, Symbol: vt.Symbol, Version: vt.Version}
		for _, slot := range vt.Slots {
			s.Slots = append(s.Slots, VTableSlot{
				Index:    slot.Index,
				Member:   slot.Member,
				Accessor: slot.Accessor,
				Symbol:   slot.Symbol,
			})
		}
		out = append(out, s)
	}
	return out
}
