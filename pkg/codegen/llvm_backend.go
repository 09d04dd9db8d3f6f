package codegen

import (
	"github.com/Chic-lang/Chic-sub010/pkg/codegen/llvmgen"
	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
)

// llvmBackend adapts pkg/codegen/llvmgen.Emit to the Backend interface.
type llvmBackend struct {
	BaseBackend
}

func newLlvmBackend(opts *CodegenOptions) Backend {
	b := &llvmBackend{BaseBackend: NewBaseBackend(opts)}
	b.SetFeature(FeatureMultiVersioning, true)
	b.SetFeature(FeatureInlineAsm, true)
	return b
}

func (b *llvmBackend) Name() string { return "llvm" }

func (b *llvmBackend) GetFileExtension() string { return "ll" }

func (b *llvmBackend) SupportsFeature(feature string) bool { return b.CheckFeature(feature) }

func (b *llvmBackend) Generate(module *mir.MirModule) ([]byte, error) {
	if err := b.ValidateOptions(); err != nil {
		return nil, err
	}
	pw := 64
	opt := llvmgen.Options{}
	opts := b.GetOptions()
	if opts != nil {
		if opts.PointerWidth != 0 {
			pw = opts.PointerWidth
		}
		opt.Trace = opts.Debug
		opt.Coverage = opts.Coverage
		opt.SveBits = opts.SVEBits
		opt.Target = opts.Target
		opt.EnabledTiers = parseTiers(opts.CPUTiers)
	}
	res := layout.New(module.Layouts)
	if module.Layouts == nil {
		res = layout.New(mir.NewTypeLayoutTable(pw))
	}
	result, err := llvmgen.Emit(module, res, opt)
	if err != nil {
		return nil, err
	}
	if err := b.RequireEntryPoint(module, result.EntrySymbol != ""); err != nil {
		return nil, err
	}
	return []byte(result.IR), nil
}

// parseTiers maps the driver's string tier names onto llvmgen's Tier enum;
// unknown names are dropped rather than failing the build (a newer driver
// talking to an older core degrades to the tiers it knows).
func parseTiers(names []string) []llvmgen.Tier {
	var out []llvmgen.Tier
	for _, n := range names {
		switch n {
		case "Baseline":
			out = append(out, llvmgen.TierBaseline)
		case "DotProd":
			out = append(out, llvmgen.TierDotProd)
		case "Fp16Fml":
			out = append(out, llvmgen.TierFp16Fml)
		case "Bf16":
			out = append(out, llvmgen.TierBf16)
		case "I8mm":
			out = append(out, llvmgen.TierI8mm)
		case "Sve":
			out = append(out, llvmgen.TierSve)
		case "Sve2":
			out = append(out, llvmgen.TierSve2)
		case "Sme":
			out = append(out, llvmgen.TierSme)
		case "Avx2":
			out = append(out, llvmgen.TierAvx2)
		case "Avx512":
			out = append(out, llvmgen.TierAvx512)
		}
	}
	return out
}

func init() {
	RegisterBackend("llvm", newLlvmBackend)
}
