package codegen

import (
	"github.com/Chic-lang/Chic-sub010/pkg/codegen/wasmgen"
	"github.com/Chic-lang/Chic-sub010/pkg/layout"
	"github.com/Chic-lang/Chic-sub010/pkg/mir"
)

// wasmBackend adapts pkg/codegen/wasmgen.Emit to the Backend interface.
type wasmBackend struct {
	BaseBackend
}

func newWasmBackend(opts *CodegenOptions) Backend {
	b := &wasmBackend{BaseBackend: NewBaseBackend(opts)}
	b.SetFeature(FeatureMultiVersioning, false) // §4.4 is LLVM-only
	b.SetFeature(FeatureInlineAsm, false)       // §4.2: "InlineAsm: hard error"
	return b
}

func (b *wasmBackend) Name() string { return "wasm" }

func (b *wasmBackend) GetFileExtension() string { return "wasm" }

func (b *wasmBackend) SupportsFeature(feature string) bool { return b.CheckFeature(feature) }

func (b *wasmBackend) Generate(module *mir.MirModule) ([]byte, error) {
	if err := b.ValidateOptions(); err != nil {
		return nil, err
	}
	pw := 32
	coverage := false
	debug := false
	opts := b.GetOptions()
	if opts != nil {
		if opts.PointerWidth != 0 {
			pw = opts.PointerWidth
		}
		coverage = opts.Coverage
		debug = opts.Debug
	}
	res := layout.New(module.Layouts)
	if module.Layouts == nil {
		res = layout.New(mir.NewTypeLayoutTable(pw))
	}
	result, err := wasmgen.Emit(module, res, wasmgen.Options{Trace: debug, Coverage: coverage})
	if err != nil {
		return nil, err
	}
	if err := b.RequireEntryPoint(module, result.EntryIndex >= 0); err != nil {
		return nil, err
	}
	return result.Bytes, nil
}

func init() {
	RegisterBackend("wasm", newWasmBackend)
}
