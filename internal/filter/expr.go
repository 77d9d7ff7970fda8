package filter

import (
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	apperrors "github.com/coral-mesh/fpgaprof/internal/errors"
	"github.com/coral-mesh/fpgaprof/internal/profile"
	"github.com/coral-mesh/fpgaprof/internal/safe"
)

// Variables visible to kernel expressions.
const (
	VarName        = "name"
	VarComputeUnit = "compute_unit"
	VarAutorun     = "autorun"
	VarDeviceIDs   = "device_ids"
	VarStartTime   = "start_time"
	VarEndTime     = "end_time"
	VarNumSamples  = "num_samples"
)

type exprFilter struct {
	source  string
	program cel.Program
	logger  zerolog.Logger
}

// Expr compiles a CEL predicate over kernel attributes, for example
//
//	name.startsWith("matmul") && !autorun && end_time - start_time > 1000
//
// An empty expression accepts every kernel. Expressions that do not
// evaluate to a bool are rejected here. A kernel whose evaluation fails at
// runtime is excluded and the failure is logged at debug level.
func Expr(source string, logger zerolog.Logger) (Filter, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return Everything, nil
	}

	env, err := cel.NewEnv(
		cel.Variable(VarName, cel.StringType),
		cel.Variable(VarComputeUnit, cel.IntType),
		cel.Variable(VarAutorun, cel.BoolType),
		cel.Variable(VarDeviceIDs, cel.ListType(cel.IntType)),
		cel.Variable(VarStartTime, cel.IntType),
		cel.Variable(VarEndTime, cel.IntType),
		cel.Variable(VarNumSamples, cel.IntType),
	)
	if err != nil {
		return nil, apperrors.Config("create expression environment: %v", err)
	}

	ast, issues := env.Compile(source)
	if issues != nil && issues.Err() != nil {
		return nil, apperrors.Config("invalid kernel expression %q: %v", source, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, apperrors.Config("kernel expression %q must evaluate to bool, got %s", source, ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, apperrors.Config("invalid kernel expression %q: %v", source, err)
	}

	return &exprFilter{source: source, program: program, logger: logger}, nil
}

func (f *exprFilter) Match(k *profile.Kernel) bool {
	out, _, err := f.program.Eval(activation(k))
	if err != nil {
		f.logger.Debug().
			Err(err).
			Str("kernel", k.Name).
			Str("expr", f.source).
			Msg("Kernel expression failed, excluding kernel")
		return false
	}
	match, ok := out.Value().(bool)
	return ok && match
}

func activation(k *profile.Kernel) map[string]any {
	start, _ := safe.Uint64ToInt64(uint64(k.StartTime))
	end, _ := safe.Uint64ToInt64(uint64(k.EndTime))
	return map[string]any{
		VarName:        k.Name,
		VarComputeUnit: int64(k.ComputeUnit),
		VarAutorun:     bool(k.IsAutorun),
		VarDeviceIDs:   lo.Map(k.DeviceIDs, func(id profile.Uint32, _ int) int64 { return int64(id) }),
		VarStartTime:   start,
		VarEndTime:     end,
		VarNumSamples:  int64(k.NumSamples),
	}
}
