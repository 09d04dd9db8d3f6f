// chic-codegen drives the code-generation core from the command line: it
// lowers MIR through either backend, executes emitted modules in the test
// VM, packs .clrlib archives, and gates perf snapshots. The frontend
// (lexer/parser/lowering) is a separate collaborator; the built-in smoke
// module (demoModule) stands in for it here.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Chic-lang/Chic-sub010/pkg/clrlib"
	"github.com/Chic-lang/Chic-sub010/pkg/cliutil"
	"github.com/Chic-lang/Chic-sub010/pkg/codegen"
	"github.com/Chic-lang/Chic-sub010/pkg/metaobj"
	"github.com/Chic-lang/Chic-sub010/pkg/perf"
	"github.com/Chic-lang/Chic-sub010/pkg/version"
	"github.com/Chic-lang/Chic-sub010/pkg/wasmvm"
	"github.com/spf13/cobra"
)

var (
	outputFile   string
	targetTriple string
	pointerWidth int
	coverage     bool
	cpuTiers     []string
	sveBits      int
	showVersion  bool

	reportBaseline  string
	reportProfile   string
	reportJSON      bool
	reportStrict    bool
	reportTolerance float64
)

var rootCmd = &cobra.Command{
	Use:   "chic-codegen",
	Short: "Chic code-generation core " + version.GetVersion(),
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Println(version.GetFullVersion())
			return
		}
		cmd.Help()
	},
}

func codegenOptions() *codegen.CodegenOptions {
	opts := &codegen.CodegenOptions{
		PointerWidth:      pointerWidth,
		Coverage:          coverage,
		RequireEntryPoint: true,
		CPUTiers:          cpuTiers,
		SVEBits:           sveBits,
		Target:            targetTriple,
	}
	if skip := os.Getenv("CHIC_SKIP_STDLIB"); skip == "1" || skip == "true" {
		opts.RequireEntryPoint = false
	}
	if os.Getenv("CHIC_WASM_TRACE") != "" {
		opts.Debug = true
	}
	if len(opts.CPUTiers) == 0 {
		opts.CPUTiers = codegen.HostCPUTiers()
	}
	return opts
}

var emitWasmCmd = &cobra.Command{
	Use:   "emit-wasm",
	Short: "Lower the demo MIR module to a binary WASM module",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := codegen.GetBackend("wasm", codegenOptions())
		mod := demoModule()
		bytes, err := backend.Generate(mod)
		if err != nil {
			return cliutil.Errorf("codegen", "%v", err)
		}
		out := outputFile
		if out == "" {
			out = mod.Name + "." + backend.GetFileExtension()
		}
		if err := writeArtifact(out, bytes); err != nil {
			return cliutil.Errorf("codegen", "write %s: %v", out, err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", out, len(bytes))
		return nil
	},
}

var emitLlvmCmd = &cobra.Command{
	Use:   "emit-llvm",
	Short: "Lower the demo MIR module to textual LLVM IR",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := codegen.GetBackend("llvm", codegenOptions())
		mod := demoModule()
		ir, err := backend.Generate(mod)
		if err != nil {
			return cliutil.Errorf("codegen", "%v", err)
		}
		out := outputFile
		if out == "" {
			out = mod.Name + "." + backend.GetFileExtension()
		}
		if err := writeArtifact(out, ir); err != nil {
			return cliutil.Errorf("codegen", "write %s: %v", out, err)
		}
		if dir := os.Getenv("CHIC_DUMP_LLVM_DIR"); dir != "" {
			stem := strings.TrimSuffix(filepath.Base(out), filepath.Ext(out))
			dump := filepath.Join(dir, fmt.Sprintf("%s-%s.ll", stem, "Main"))
			if err := writeArtifact(dump, ir); err != nil {
				return cliutil.Errorf("codegen", "dump %s: %v", dump, err)
			}
		}
		fmt.Printf("wrote %s (%d bytes)\n", out, len(ir))
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run [module.wasm]",
	Short: "Execute an emitted module's chic_main in the test VM",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return cliutil.Errorf("run", "%v", err)
		}
		mod, err := wasmvm.ParseModule(data)
		if err != nil {
			return cliutil.Errorf("run", "%v", err)
		}
		vm, err := wasmvm.NewVM(mod, wasmvm.Config{})
		if err != nil {
			return cliutil.Errorf("run", "%v", err)
		}
		res, err := vm.CallExport("chic_main")
		if err != nil {
			return cliutil.Errorf("run", "%v", err)
		}
		code := 0
		if len(res) > 0 {
			code = int(int32(uint32(res[0])))
		}
		fmt.Printf("exit code %d (%d instructions)\n", code, vm.Stats.InstructionsExecuted)
		if code != 0 {
			os.Exit(code)
		}
		return nil
	},
}

var packCmd = &cobra.Command{
	Use:   "pack [files...]",
	Short: "Bundle object, metadata, and IR payloads into a .clrlib archive",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mod := demoModule()
		obj, err := metaobj.Build(metaobj.Input{
			Module:          mod,
			TargetRequested: targetTriple,
			TargetCanonical: targetTriple,
			Kind:            metaobj.KindStaticLibrary,
		}, nil)
		if err != nil {
			return cliutil.Errorf("pack", "%v", err)
		}
		members := []clrlib.Member{
			{Name: mod.Name + ".metadata.o", Role: clrlib.RoleMetadata, Payload: obj.Bytes},
		}
		for _, path := range args {
			payload, err := os.ReadFile(path)
			if err != nil {
				return cliutil.Errorf("pack", "%v", err)
			}
			members = append(members, clrlib.Member{
				Name:    filepath.Base(path),
				Role:    roleForFile(path),
				Payload: payload,
			})
		}
		manifest := &clrlib.Manifest{
			Target:    targetTriple,
			Kind:      string(metaobj.KindStaticLibrary),
			Namespace: mod.Name,
			Exports:   clrlib.ExportsFromModule(mod),
			VTables:   clrlib.VTablesFromModule(mod),
		}
		out := outputFile
		if out == "" {
			out = mod.Name + ".clrlib"
		}
		if err := clrlib.WriteFile(out, manifest, members); err != nil {
			return cliutil.Errorf("pack", "%v", err)
		}
		fmt.Printf("wrote %s (%d members)\n", out, len(members))
		return nil
	},
}

var perfReportCmd = &cobra.Command{
	Use:   "perf-report [snapshot.json]",
	Short: "Compare a perf snapshot against budgets and a baseline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := perf.LoadSnapshot(args[0])
		if err != nil {
			return cliutil.Errorf("perf-report", "%v", err)
		}
		var baseline *perf.PerfSnapshot
		if reportBaseline != "" {
			baseline, err = perf.LoadSnapshot(reportBaseline)
			if err != nil {
				return cliutil.Errorf("perf-report", "%v", err)
			}
		}
		if reportProfile != "" && snapshot.Profile != "" && snapshot.Profile != reportProfile {
			return cliutil.Errorf("perf-report", "snapshot profile %q does not match --profile %q",
				snapshot.Profile, reportProfile)
		}
		summary := perf.Compare(snapshot, baseline, reportTolerance)
		if reportJSON {
			fmt.Printf("{\"total\":%d,\"over_budget\":%d,\"regressions\":%d}\n",
				summary.Total, summary.OverBudget, summary.Regressions)
		} else {
			fmt.Printf("total=%d over_budget=%d regressions=%d\n",
				summary.Total, summary.OverBudget, summary.Regressions)
			for _, f := range summary.Findings {
				flag := ""
				if f.OverBudget {
					flag += " OVER-BUDGET"
				}
				if f.Regressed {
					flag += " REGRESSED"
				}
				fmt.Printf("  trace %d cpu_us=%g%s\n", f.Metric.TraceID, f.Metric.CpuUs, flag)
			}
		}
		if reportStrict && summary.Failed() {
			os.Exit(1)
		}
		return nil
	},
}

func roleForFile(path string) clrlib.FileRole {
	switch filepath.Ext(path) {
	case ".o", ".obj":
		return clrlib.RoleObject
	case ".ll":
		return clrlib.RoleLlvmIr
	default:
		return clrlib.RoleOther
	}
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file path")
	rootCmd.PersistentFlags().StringVar(&targetTriple, "target", "x86_64-unknown-linux-gnu", "target triple")
	rootCmd.PersistentFlags().IntVar(&pointerWidth, "pointer-width", 32, "pointer width in bits (32 or 64)")
	rootCmd.PersistentFlags().BoolVar(&coverage, "coverage", false, "instrument statements with coverage_hit calls")
	rootCmd.PersistentFlags().StringSliceVar(&cpuTiers, "cpu-isa", nil, "CPU ISA tiers for multi-versioning (default: host CPU)")
	rootCmd.PersistentFlags().IntVar(&sveBits, "sve-bits", 0, "pin the SVE vector width (0 = runtime query)")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	perfReportCmd.Flags().StringVar(&reportBaseline, "baseline", "", "baseline snapshot JSON")
	perfReportCmd.Flags().StringVar(&reportProfile, "profile", "", "required snapshot profile name")
	perfReportCmd.Flags().BoolVar(&reportJSON, "json", false, "emit machine-readable output")
	perfReportCmd.Flags().BoolVar(&reportStrict, "strict", false, "exit nonzero on regressions or over-budget entries")
	perfReportCmd.Flags().Float64Var(&reportTolerance, "tolerance", 0, "regression tolerance in percent")

	rootCmd.AddCommand(emitWasmCmd)
	rootCmd.AddCommand(emitLlvmCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(perfReportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
