package codegen

import (
	"fmt"

	"github.com/Chic-lang/Chic-sub010/pkg/mir"
)

// BaseBackend provides the option/feature bookkeeping shared by both
// concrete backends, mirroring the teacher's BaseBackend shape.
type BaseBackend struct {
	options  *CodegenOptions
	features map[string]bool
}

// NewBaseBackend creates a base backend with every backend's common
// default feature set.
func NewBaseBackend(options *CodegenOptions) BaseBackend {
	return BaseBackend{
		options: options,
		features: map[string]bool{
			FeatureMultiVersioning: false,
			FeatureCoverage:        true,
			FeatureAsync:           true,
			FeatureTraitDispatch:   true,
			FeatureVirtualDispatch: true,
			FeatureAtomics:         true,
			FeatureInlineAsm:       false,
		},
	}
}

// ValidateOptions rejects a PointerWidth other than 0 (default), 32 or 64;
// no other option is checked.
func (b *BaseBackend) ValidateOptions() error {
	if b.options == nil {
		return nil
	}
	if b.options.PointerWidth != 0 && b.options.PointerWidth != 32 && b.options.PointerWidth != 64 {
		return fmt.Errorf("codegen: unsupported pointer width %d", b.options.PointerWidth)
	}
	return nil
}

// RequireEntryPoint implements §6's "executable builds require Main"
// check: each backend's Generate calls it after emission and fails the
// build when the module has no entry point.
func (b *BaseBackend) RequireEntryPoint(mod *mir.MirModule, hasEntry bool) error {
	if b.options == nil || !b.options.RequireEntryPoint {
		return nil
	}
	if hasEntry {
		return nil
	}
	return fmt.Errorf("codegen: executable module %q has no Main entry point (set CHIC_SKIP_STDLIB to bypass)", mod.Name)
}

// GetOptions returns the backend's configured options.
func (b *BaseBackend) GetOptions() *CodegenOptions {
	return b.options
}

// SetFeature overrides a feature support flag.
func (b *BaseBackend) SetFeature(feature string, supported bool) {
	b.features[feature] = supported
}

// CheckFeature reports whether a feature is supported.
func (b *BaseBackend) CheckFeature(feature string) bool {
	return b.features[feature]
}
