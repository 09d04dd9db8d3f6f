package llvmgen

import (
	"strings"
	"testing"

	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
)

func addReturnModule() *mir.MirModule {
	intTy := mir.TyNamed{Name: "int"}
	add := &mir.MirFunction{
		Name: "Smoke::Add",
		Sig:  mir.Signature{Params: []mir.Ty{intTy, intTy}, Ret: intTy},
		Body: &mir.MirBody{
			ArgCount: 2,
			Locals: []*mir.LocalDecl{
				{Ty: intTy, Kind: mir.LocalReturn},
				{Name: "a", Ty: intTy, Kind: mir.LocalArg, ArgIndex: 0},
				{Name: "b", Ty: intTy, Kind: mir.LocalArg, ArgIndex: 1},
			},
			Blocks: []*mir.BasicBlock{{
				Id: 0,
				Statements: []mir.Statement{
					mir.StmtAssign{
						Place: mir.Place{Local: 0},
						Rvalue: mir.RvBinary{
							Op:  mir.BinAdd,
							Lhs: mir.OperandCopy{Place: mir.Place{Local: 1}},
							Rhs: mir.OperandCopy{Place: mir.Place{Local: 2}},
						},
					},
				},
				Terminator: mir.TermReturn{},
			}},
		},
	}
	return &mir.MirModule{
		Name:      "Smoke",
		Functions: []*mir.MirFunction{add},
		Layouts:   mir.NewTypeLayoutTable(64),
	}
}

// TestAddEmitsSymbolAndTriple covers scenario S1's LLVM half: the IR
// declares the target triple and defines @Smoke__Add.
func TestAddEmitsSymbolAndTriple(t *testing.T) {
	mod := addReturnModule()
	res, err := Emit(mod, layout.New(mod.Layouts), Options{Target: "x86_64-unknown-linux-gnu"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.IR, "target triple") {
		t.Error("IR missing target triple")
	}
	if !strings.Contains(res.IR, "define i32 @Smoke__Add(") {
		t.Errorf("IR missing @Smoke__Add definition:\n%s", res.IR)
	}
	if !strings.Contains(res.IR, "add i32") {
		t.Error("IR missing the add instruction")
	}
}

// TestDropGlueAndDispose covers scenario S2: dropping a Demo::Disposable
// invokes the dispose symbol and the synthesized drop glue.
func TestDropGlueAndDispose(t *testing.T) {
	table := mir.NewTypeLayoutTable(64)
	table.Classes["Demo::Disposable"] = &mir.ClassLayout{
		StructLayout: mir.StructLayout{
			Name: "Demo::Disposable",
			Fields: []mir.FieldLayout{
				{Name: "buf", Index: 0, Offset: 0, Ty: mir.TyString{}, Size: 8, Align: 8},
			},
			Size: 8, Align: 8,
		},
		VtableSymbol: "Demo__Disposable__vtable",
		Dispose:      "Demo::Disposable::dispose",
	}
	dispTy := mir.TyNamed{Name: "Demo::Disposable"}
	fn := &mir.MirFunction{
		Name: "Demo::Use",
		Sig:  mir.Signature{Ret: mir.TyUnit{}},
		Body: &mir.MirBody{
			Locals: []*mir.LocalDecl{
				{Ty: mir.TyUnit{}, Kind: mir.LocalReturn},
				{Name: "d", Ty: dispTy, Kind: mir.LocalLocal},
			},
			Blocks: []*mir.BasicBlock{{
				Id: 0,
				Statements: []mir.Statement{
					mir.StmtDrop{Place: mir.Place{Local: 1}, Ty: dispTy},
				},
				Terminator: mir.TermReturn{},
			}},
		},
	}
	mod := &mir.MirModule{Name: "Demo", Functions: []*mir.MirFunction{fn}, Layouts: table}
	res, err := Emit(mod, layout.New(table), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.IR, "call void @Demo__Disposable__dispose") {
		t.Errorf("IR missing dispose call:\n%s", res.IR)
	}
	if !strings.Contains(res.IR, "call void @__cl_drop__Demo__Disposable") {
		t.Errorf("IR missing drop glue call:\n%s", res.IR)
	}
	if !strings.Contains(res.IR, "define linkonce_odr void @__cl_drop__Demo__Disposable(") {
		t.Error("IR missing drop glue definition")
	}
}

func matmulModule() *mir.MirModule {
	vecTy := mir.TyVector{Elem: mir.TyNamed{Name: "int"}, Lanes: 4}
	fn := &mir.MirFunction{
		Name: "Kern::MatMul",
		Sig:  mir.Signature{Params: []mir.Ty{vecTy, vecTy}, Ret: vecTy},
		Body: &mir.MirBody{
			ArgCount: 2,
			Locals: []*mir.LocalDecl{
				{Ty: vecTy, Kind: mir.LocalReturn},
				{Name: "a", Ty: vecTy, Kind: mir.LocalArg, ArgIndex: 0},
				{Name: "b", Ty: vecTy, Kind: mir.LocalArg, ArgIndex: 1},
			},
			Blocks: []*mir.BasicBlock{{
				Id: 0,
				Statements: []mir.Statement{
					mir.StmtAssign{
						Place: mir.Place{Local: 0},
						Rvalue: mir.RvBinary{
							Op:  mir.BinMul,
							Lhs: mir.OperandCopy{Place: mir.Place{Local: 1}},
							Rhs: mir.OperandCopy{Place: mir.Place{Local: 2}},
						},
					},
				},
				Terminator: mir.TermReturn{},
			}},
		},
	}
	return &mir.MirModule{Name: "Kern", Functions: []*mir.MirFunction{fn}, Layouts: mir.NewTypeLayoutTable(64)}
}

// TestAppleCPUDispatch covers scenario S4: multi-versioning on an Apple
// arm64 triple probes via sysctlbyname/chic_arm_sysctl_flag, and the
// I8mm variant of a matmul kernel uses the usmmla intrinsic.
func TestAppleCPUDispatch(t *testing.T) {
	mod := matmulModule()
	opt := Options{
		Target:       "arm64-apple-macosx15.0",
		EnabledTiers: []Tier{TierBaseline, TierDotProd, TierBf16, TierI8mm},
	}
	res, err := Emit(mod, layout.New(mod.Layouts), opt)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"@sysctlbyname",
		"@chic_arm_sysctl_flag",
		"@Kern__MatMul__Baseline",
		"@Kern__MatMul__DotProd",
		"@Kern__MatMul__I8mm",
		"define <4 x i32> @Kern__MatMul(",
	} {
		if !strings.Contains(res.IR, want) {
			t.Errorf("IR missing %q", want)
		}
	}
	i8mm := variantBody(res.IR, "@Kern__MatMul__I8mm")
	if !strings.Contains(i8mm, "@llvm.aarch64.neon.usmmla.v4i32") {
		t.Errorf("I8mm variant missing usmmla intrinsic:\n%s", i8mm)
	}
}

// TestLinuxCPUDispatchUsesGetauxval checks the other probe path: on a
// Linux triple the dispatcher reads AT_HWCAP (auxv type 16).
func TestLinuxCPUDispatchUsesGetauxval(t *testing.T) {
	mod := matmulModule()
	opt := Options{
		Target:       "aarch64-unknown-linux-gnu",
		EnabledTiers: []Tier{TierBaseline, TierDotProd, TierSve},
	}
	res, err := Emit(mod, layout.New(mod.Layouts), opt)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.IR, "@getauxval") {
		t.Error("IR missing getauxval declaration")
	}
	if !strings.Contains(res.IR, "call i64 @getauxval(i64 16)") {
		t.Error("IR missing the AT_HWCAP read")
	}
	sve := variantBody(res.IR, "@Kern__MatMul__Sve")
	if !strings.Contains(sve, "@llvm.aarch64.sve.usmmla.nxv4i32") {
		t.Errorf("Sve variant missing scalable usmmla:\n%s", sve)
	}
}

// TestMismatchedArchVariantTraps pins the "variant lacking hardware
// support" rule: an AVX2 variant targeting arm64 is a trap body.
func TestMismatchedArchVariantTraps(t *testing.T) {
	mod := matmulModule()
	opt := Options{
		Target:       "arm64-apple-macosx15.0",
		EnabledTiers: []Tier{TierBaseline, TierAvx2},
	}
	res, err := Emit(mod, layout.New(mod.Layouts), opt)
	if err != nil {
		t.Fatal(err)
	}
	avx2 := variantBody(res.IR, "@Kern__MatMul__Avx2")
	if !strings.Contains(avx2, "call void @llvm.trap()") {
		t.Errorf("Avx2 variant on arm64 must trap:\n%s", avx2)
	}
}

// TestOptimizationHintAttributes checks the hint-to-attribute mapping,
// including the stronger-directive rule for conflicting hints.
func TestOptimizationHintAttributes(t *testing.T) {
	mod := addReturnModule()
	fn := mod.Functions[0]
	fn.Hot = true
	fn.Cold = true // hot wins
	fn.AlwaysInline = true
	fn.NeverInline = true // alwaysinline wins
	res, err := Emit(mod, layout.New(mod.Layouts), Options{})
	if err != nil {
		t.Fatal(err)
	}
	def := variantBody(res.IR, "@Smoke__Add")
	head := def[:strings.Index(def, "{")]
	if !strings.Contains(head, "alwaysinline") || !strings.Contains(head, "hot") {
		t.Errorf("expected alwaysinline+hot on define, got %q", head)
	}
	if strings.Contains(head, "noinline") || strings.Contains(head, "cold") {
		t.Errorf("weaker directives must lose: %q", head)
	}
}

// TestSveBitsGlobal checks §4.4's pinned-width global.
func TestSveBitsGlobal(t *testing.T) {
	mod := addReturnModule()
	res, err := Emit(mod, layout.New(mod.Layouts), Options{SveBits: 256})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.IR, "@chic_cpu_sve_bits = internal global i32 256") {
		t.Error("IR missing pinned @chic_cpu_sve_bits")
	}
}

// variantBody slices one define block out of the module text.
func variantBody(ir, sym string) string {
	idx := strings.Index(ir, "define")
	for idx >= 0 {
		end := strings.Index(ir[idx:], "\n}\n")
		if end < 0 {
			end = len(ir) - idx
		}
		block := ir[idx : idx+end]
		if strings.Contains(strings.SplitN(block, "\n", 2)[0], sym+"(") {
			return block
		}
		next := strings.Index(ir[idx+1:], "define")
		if next < 0 {
			return ""
		}
		idx += 1 + next
	}
	return ""
}

// TestMatchEnumUnitDiscriminant pins §4.2's enum-unit Match lowering: the
// variant NAME resolves through the enum layout, so the compare uses the
// variant's wire discriminant (20 for Green), never a parsed-name zero.
func TestMatchEnumUnitDiscriminant(t *testing.T) {
	table := mir.NewTypeLayoutTable(64)
	table.Enums["Paint::Color"] = &mir.EnumLayout{
		Name: "Paint::Color",
		Variants: []mir.EnumVariant{
			{Name: "Red", Index: 0, Discriminant: 10},
			{Name: "Green", Index: 1, Discriminant: 20},
			{Name: "Blue", Index: 2, Discriminant: 30},
		},
		DiscriminantSize: 4,
		Size:             4, Align: 4,
	}
	intTy := mir.TyNamed{Name: "int"}
	colorTy := mir.TyNamed{Name: "Paint::Color"}
	fn := &mir.MirFunction{
		Name: "Paint::Pick",
		Sig:  mir.Signature{Params: []mir.Ty{colorTy}, Ret: intTy},
		Body: &mir.MirBody{
			ArgCount: 1,
			Locals: []*mir.LocalDecl{
				{Ty: intTy, Kind: mir.LocalReturn},
				{Name: "c", Ty: colorTy, Kind: mir.LocalArg, ArgIndex: 0},
			},
			Blocks: []*mir.BasicBlock{
				{
					Id: 0,
					Terminator: mir.TermMatch{
						Value:     mir.OperandCopy{Place: mir.Place{Local: 1}},
						Arms:      []mir.MatchArm{{Pattern: mir.PatEnumUnit{Variant: "Green"}, Target: 1}},
						Otherwise: 2,
					},
				},
				{Id: 1, Terminator: mir.TermReturn{}},
				{Id: 2, Terminator: mir.TermReturn{}},
			},
		},
	}
	mod := &mir.MirModule{Name: "Paint", Functions: []*mir.MirFunction{fn}, Layouts: table}
	res, err := Emit(mod, layout.New(table), Options{})
	if err != nil {
		t.Fatal(err)
	}
	var compares []string
	for _, line := range strings.Split(res.IR, "\n") {
		if strings.Contains(line, "icmp eq i32") {
			compares = append(compares, line)
		}
	}
	if len(compares) != 1 {
		t.Fatalf("expected one discriminant compare, got %v in:\n%s", compares, res.IR)
	}
	if !strings.HasSuffix(compares[0], ", 20") {
		t.Errorf("compare does not use Green's discriminant 20: %q", compares[0])
	}
}

// TestMatchUnknownVariantFails pins that an unresolvable variant name is a
// hard Codegen error in this backend too.
func TestMatchUnknownVariantFails(t *testing.T) {
	table := mir.NewTypeLayoutTable(64)
	table.Enums["Paint::Color"] = &mir.EnumLayout{
		Name:     "Paint::Color",
		Variants: []mir.EnumVariant{{Name: "Red", Index: 0, Discriminant: 10}},
		Size:     4, Align: 4,
	}
	colorTy := mir.TyNamed{Name: "Paint::Color"}
	fn := &mir.MirFunction{
		Name: "Paint::Pick",
		Sig:  mir.Signature{Params: []mir.Ty{colorTy}, Ret: mir.TyUnit{}},
		Body: &mir.MirBody{
			ArgCount: 1,
			Locals: []*mir.LocalDecl{
				{Ty: mir.TyUnit{}, Kind: mir.LocalReturn},
				{Name: "c", Ty: colorTy, Kind: mir.LocalArg, ArgIndex: 0},
			},
			Blocks: []*mir.BasicBlock{
				{
					Id: 0,
					Terminator: mir.TermMatch{
						Value:     mir.OperandCopy{Place: mir.Place{Local: 1}},
						Arms:      []mir.MatchArm{{Pattern: mir.PatEnumUnit{Variant: "Chartreuse"}, Target: 1}},
						Otherwise: 1,
					},
				},
				{Id: 1, Terminator: mir.TermReturn{}},
			},
		},
	}
	mod := &mir.MirModule{Name: "Paint", Functions: []*mir.MirFunction{fn}, Layouts: table}
	if _, err := Emit(mod, layout.New(table), Options{}); err == nil {
		t.Fatal("expected error for unknown enum variant")
	} else if !strings.Contains(err.Error(), "Chartreuse") {
		t.Errorf("error should name the variant: %v", err)
	}
}
