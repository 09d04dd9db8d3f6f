package wasmgen

import (
	"bytes"
	"sort"

	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/runtimehooks"
	"github.com/Chic-lang/Chic-sub010/pkg/wasmcodec"
)

// DropGluePrefix names the compiler-synthesized per-type drop function,
// `__cl_drop__<Ty>`: it drops a value's fields in declared order, invoking
// the user's dispose symbol first for classes that declare one.
const DropGluePrefix = "__cl_drop__"

// dropGlueTypes returns the layout-table type names that need synthesized
// drop glue, sorted so glue function indices are deterministic.
func dropGlueTypes(res *layout.Resolver) []string {
	var names []string
	t := res.Table
	for n := range t.Structs {
		if res.TypeRequiresDrop(n) {
			names = append(names, n)
		}
	}
	for n := range t.Enums {
		if res.TypeRequiresDrop(n) {
			names = append(names, n)
		}
	}
	for n := range t.Classes {
		if res.TypeRequiresDrop(n) {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// glueEmitter builds one __cl_drop__<T> code-section body. The glue's shape
// is fixed: one i32 pointer param, no declared locals, straight-line field
// drops, end.
type glueEmitter struct {
	b   *ModuleBuilder
	buf bytes.Buffer
}

func emitDropGlue(b *ModuleBuilder, name string) ([]byte, error) {
	ge := &glueEmitter{b: b}
	wasmcodec.PutUvarint(&ge.buf, 0) // no extra locals

	kind, v, err := b.res.LayoutForName(name)
	if err != nil {
		return nil, err
	}
	switch kind {
	case layout.LayoutStruct:
		l := v.(*mir.StructLayout)
		if err := ge.dropFields(l.Fields); err != nil {
			return nil, err
		}
	case layout.LayoutClass:
		l := v.(*mir.ClassLayout)
		if l.Dispose != "" {
			if idx, ok := b.funcIndexByName(l.Dispose); ok {
				ge.paramPtr(0)
				ge.buf.WriteByte(byte(wasmcodec.OpCall))
				wasmcodec.PutUvarint(&ge.buf, uint64(idx))
			}
		}
		if err := ge.dropFields(l.Fields); err != nil {
			return nil, err
		}
	case layout.LayoutEnum:
		l := v.(*mir.EnumLayout)
		if err := ge.dropEnum(l); err != nil {
			return nil, err
		}
	}

	ge.buf.WriteByte(byte(wasmcodec.OpEnd))
	return ge.buf.Bytes(), nil
}

// paramPtr pushes the value pointer plus a byte offset.
func (ge *glueEmitter) paramPtr(offset int) {
	ge.buf.WriteByte(byte(wasmcodec.OpLocalGet))
	wasmcodec.PutUvarint(&ge.buf, 0)
	if offset != 0 {
		ge.buf.WriteByte(byte(wasmcodec.OpI32Const))
		wasmcodec.PutVarint(&ge.buf, int64(offset))
		ge.buf.WriteByte(byte(wasmcodec.OpI32Add))
	}
}

func (ge *glueEmitter) loadHandle(offset int) {
	ge.paramPtr(offset)
	ge.buf.WriteByte(byte(wasmcodec.OpI32Load))
	ge.buf.WriteByte(2)
	ge.buf.WriteByte(0)
}

func (ge *glueEmitter) callHook(id runtimehooks.HookID) {
	ge.buf.WriteByte(byte(wasmcodec.OpCall))
	wasmcodec.PutUvarint(&ge.buf, uint64(hookImportIndex(id)))
}

func (ge *glueEmitter) dropFields(fields []mir.FieldLayout) error {
	for _, f := range fields {
		if err := ge.dropField(f.Offset, f.Ty); err != nil {
			return err
		}
	}
	return nil
}

func (ge *glueEmitter) dropField(offset int, t mir.Ty) error {
	switch ty := t.(type) {
	case mir.TyString:
		ge.loadHandle(offset)
		ge.callHook(runtimehooks.HookStringDrop)
	case mir.TyVec, mir.TyArray, mir.TySpan, mir.TyReadOnlySpan:
		ge.paramPtr(offset)
		ge.callHook(runtimehooks.HookVecDrop)
	case mir.TyRc:
		ge.loadHandle(offset)
		ge.callHook(runtimehooks.HookRcDrop)
	case mir.TyArc:
		ge.loadHandle(offset)
		ge.callHook(runtimehooks.HookArcDrop)
	case mir.TyNamed:
		if !ge.b.res.TypeRequiresDrop(ty.Name) {
			return nil
		}
		if idx, ok := ge.b.funcIndexByName(DropGluePrefix + ty.Name); ok {
			ge.paramPtr(offset)
			ge.buf.WriteByte(byte(wasmcodec.OpCall))
			wasmcodec.PutUvarint(&ge.buf, uint64(idx))
		} else {
			ge.paramPtr(offset)
			ge.callHook(runtimehooks.HookDropMissing)
		}
	case mir.TyTuple:
		off := offset
		for _, e := range ty.Elems {
			s, a, err := ge.b.res.SizeAndAlignForTy(e)
			if err != nil {
				return err
			}
			off = mir.AlignTo(off, a)
			if err := ge.dropField(off, e); err != nil {
				return err
			}
			off += s
		}
	}
	return nil
}

// dropEnum guards each payload-carrying variant's field drops behind a
// discriminant compare; variants without droppable payloads are skipped.
func (ge *glueEmitter) dropEnum(l *mir.EnumLayout) error {
	for _, variant := range l.Variants {
		droppable := false
		for _, f := range variant.Fields {
			if ge.b.res.TyRequiresDrop(f.Ty) {
				droppable = true
				break
			}
		}
		if !droppable {
			continue
		}
		ge.loadHandle(0) // discriminant is the leading word
		ge.buf.WriteByte(byte(wasmcodec.OpI32Const))
		wasmcodec.PutVarint(&ge.buf, variant.Discriminant)
		ge.buf.WriteByte(byte(wasmcodec.OpI32Eq))
		ge.buf.WriteByte(byte(wasmcodec.OpIf))
		ge.buf.WriteByte(wasmcodec.BlockTypeEmpty)
		if err := ge.dropFields(variant.Fields); err != nil {
			return err
		}
		ge.buf.WriteByte(byte(wasmcodec.OpEnd))
	}
	return nil
}
