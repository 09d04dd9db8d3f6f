package llvmgen

import (
	"fmt"
	"strings"

	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
	"github.com/Chic-lang/Chic-sub010/pkg/runtimehooks"
)

// dropGlueSymbol returns the __cl_drop__<T> symbol for a named type,
// defining its body on first use. The glue drops fields in declared order,
// calling the class's dispose symbol first when one exists; nested named
// fields recurse into their own glue.
func (b *ModuleBuilder) dropGlueSymbol(name string) string {
	sym := "@__cl_drop__" + mangle(name)
	if b.declared[sym] {
		return sym
	}
	b.declared[sym] = true

	var sb strings.Builder
	fmt.Fprintf(&sb, "define linkonce_odr void %s(i8* %%self) {\nentry:\n", sym)

	kind, v, err := b.res.LayoutForName(name)
	if err != nil {
		sb.WriteString("  ret void\n}\n\n")
		b.funcs.WriteString(sb.String())
		return sym
	}
	g := &glueWriter{b: b, sb: &sb}
	switch kind {
	case layout.LayoutStruct:
		g.dropFields(v.(*mir.StructLayout).Fields)
	case layout.LayoutClass:
		cl := v.(*mir.ClassLayout)
		if cl.Dispose != "" {
			dsym := "@" + mangle(cl.Dispose)
			b.declareRaw(dsym, "declare void "+dsym+"(i8*)")
			fmt.Fprintf(&sb, "  call void %s(i8* %%self)\n", dsym)
		}
		g.dropFields(cl.Fields)
	case layout.LayoutEnum:
		g.dropEnum(v.(*mir.EnumLayout))
	}
	sb.WriteString("  ret void\n}\n\n")
	b.funcs.WriteString(sb.String())
	return sym
}

type glueWriter struct {
	b    *ModuleBuilder
	sb   *strings.Builder
	next int
}

func (g *glueWriter) reg() string {
	g.next++
	return fmt.Sprintf("%%g%d", g.next)
}

// fieldPtr yields an i8* to self+offset.
func (g *glueWriter) fieldPtr(offset int) string {
	if offset == 0 {
		return "%self"
	}
	r := g.reg()
	fmt.Fprintf(g.sb, "  %s = getelementptr i8, i8* %%self, i64 %d\n", r, offset)
	return r
}

func (g *glueWriter) callHandleHook(id runtimehooks.HookID, offset int, loadHandle bool) {
	sym, err := g.b.declareHook(id)
	if err != nil {
		return
	}
	ptr := g.fieldPtr(offset)
	arg := g.reg()
	if loadHandle {
		typed := g.reg()
		fmt.Fprintf(g.sb, "  %s = bitcast i8* %s to i32*\n", typed, ptr)
		fmt.Fprintf(g.sb, "  %s = load i32, i32* %s\n", arg, typed)
	} else {
		fmt.Fprintf(g.sb, "  %s = ptrtoint i8* %s to i32\n", arg, ptr)
	}
	fmt.Fprintf(g.sb, "  call void %s(i32 %s)\n", sym, arg)
}

func (g *glueWriter) dropFields(fields []mir.FieldLayout) {
	for _, f := range fields {
		g.dropField(f.Offset, f.Ty)
	}
}

func (g *glueWriter) dropField(offset int, t mir.Ty) {
	switch ty := t.(type) {
	case mir.TyString:
		g.callHandleHook(runtimehooks.HookStringDrop, offset, true)
	case mir.TyVec, mir.TyArray, mir.TySpan, mir.TyReadOnlySpan:
		g.callHandleHook(runtimehooks.HookVecDrop, offset, false)
	case mir.TyRc:
		g.callHandleHook(runtimehooks.HookRcDrop, offset, true)
	case mir.TyArc:
		g.callHandleHook(runtimehooks.HookArcDrop, offset, true)
	case mir.TyNamed:
		if !g.b.res.TypeRequiresDrop(ty.Name) {
			return
		}
		nested := g.b.dropGlueSymbol(ty.Name)
		ptr := g.fieldPtr(offset)
		fmt.Fprintf(g.sb, "  call void %s(i8* %s)\n", nested, ptr)
	case mir.TyTuple:
		off := offset
		for _, e := range ty.Elems {
			s, a, err := g.b.res.SizeAndAlignForTy(e)
			if err != nil {
				return
			}
			off = mir.AlignTo(off, a)
			g.dropField(off, e)
			off += s
		}
	}
}

// dropEnum guards each droppable variant's field drops behind a
// discriminant compare.
func (g *glueWriter) dropEnum(l *mir.EnumLayout) {
	discTyped := g.reg()
	fmt.Fprintf(g.sb, "  %s = bitcast i8* %%self to i32*\n", discTyped)
	disc := g.reg()
	fmt.Fprintf(g.sb, "  %s = load i32, i32* %s\n", disc, discTyped)
	for vi, variant := range l.Variants {
		droppable := false
		for _, f := range variant.Fields {
			if g.b.res.TyRequiresDrop(f.Ty) {
				droppable = true
				break
			}
		}
		if !droppable {
			continue
		}
		cond := g.reg()
		fmt.Fprintf(g.sb, "  %s = icmp eq i32 %s, %d\n", cond, disc, variant.Discriminant)
		hit := fmt.Sprintf("variant%d", vi)
		next := fmt.Sprintf("variant%d.next", vi)
		fmt.Fprintf(g.sb, "  br i1 %s, label %%%s, label %%%s\n", cond, hit, next)
		fmt.Fprintf(g.sb, "%s:\n", hit)
		g.dropFields(variant.Fields)
		fmt.Fprintf(g.sb, "  br label %%%s\n", next)
		fmt.Fprintf(g.sb, "%s:\n", next)
	}
}
