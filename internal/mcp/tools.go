package mcp

import (
	"context"

	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
	"github.com/mark3labs/mcp-go/mcp"
)

var biasEnum = mcp.Enum(rpe.Low.String(), rpe.Moderate.String(), rpe.High.String())

// --- Tool definitions ---

var toolEstimateE1RM = mcp.NewTool("estimate_e1rm",
	mcp.WithDescription("Estimate a one-rep max from a set's weight, reps and RPE using an RPE percentage chart. Returns the e1RM and the chart percentage used."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted in kg"), mcp.Min(0)),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Reps performed, a whole number from 1 to 30"), mcp.Min(1), mcp.Max(30)),
	mcp.WithNumber("rpe", mcp.Required(), mcp.Description("Rate of perceived exertion, 0 to 10 in steps of 0.5 (10 = no reps left)"), mcp.Min(0), mcp.Max(10)),
	mcp.WithString("bias", mcp.Description("Chart bias: low suits strength-oriented lifters, high suits endurance-oriented lifters. Defaults to the server setting."), biasEnum),
)

var toolSolvePlates = mcp.NewTool("solve_plates",
	mcp.WithDescription("Work out which plates to load on each side of a barbell to reach a target weight using the fewest plates from an inventory. Returns the per-side plates, pair counts and a summary like '20 kg x 4, 2.5 kg x 2'."),
	mcp.WithNumber("target", mcp.Required(), mcp.Description("Total target weight in kg, a multiple of 0.25"), mcp.Min(0)),
	mcp.WithNumber("bar", mcp.Description("Bar weight in kg. Defaults to the server setting (usually 20).")),
	mcp.WithNumber("collars", mcp.Description("Combined collar weight in kg. Defaults to the server setting.")),
	mcp.WithObject("inventory", mcp.Description(`Total plates owned per class, keyed by kg label, e.g. {"20": 6, "2.5": 4}. Only pairs are used. Defaults to the server inventory.`)),
	mcp.WithString("strategy", mcp.Description("Search strategy: bounded respects the inventory, legacy allows reusing any available class."), mcp.Enum(string(plates.StrategyBounded), string(plates.StrategyLegacy))),
)

var toolGetRPETable = mcp.NewTool("get_rpe_table",
	mcp.WithDescription("Return the RPE percentage chart for a bias: one row per RPE from 10 down to 0, one column per rep count from 1 to 30."),
	mcp.WithString("bias", mcp.Description("Chart bias. Defaults to the server setting."), biasEnum),
)

// --- Tool handlers ---

type estimateInput struct {
	Weight *float64 `json:"weight"`
	Reps   *float64 `json:"reps"`
	RPE    *float64 `json:"rpe"`
	Bias   string   `json:"bias"`
}

func (h *handlers) estimateE1RM(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in estimateInput
	if err := req.BindArguments(&in); err != nil {
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}
	if in.Weight == nil || in.Reps == nil || in.RPE == nil {
		return mcp.NewToolResultError("weight, reps and rpe parameters are required"), nil
	}
	bias, err := h.bias(in.Bias)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	est, err := h.calc.Estimate(ctx, rpe.Request{Weight: *in.Weight, Reps: *in.Reps, RPE: *in.RPE, Bias: bias})
	if err != nil {
		return h.toolError("estimate_e1rm", err), nil
	}
	return jsonResult(est), nil
}

type solveInput struct {
	Target    *float64       `json:"target"`
	Bar       *float64       `json:"bar"`
	Collars   *float64       `json:"collars"`
	Inventory map[string]int `json:"inventory"`
	Strategy  string         `json:"strategy"`
}

func (h *handlers) solvePlates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in solveInput
	if err := req.BindArguments(&in); err != nil {
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}
	if in.Target == nil {
		return mcp.NewToolResultError("target parameter is required"), nil
	}

	lr := h.defaults.Plates
	lr.Target = *in.Target
	if in.Bar != nil {
		lr.Bar = *in.Bar
	}
	if in.Collars != nil {
		lr.Collars = *in.Collars
	}
	if in.Inventory != nil {
		inv, err := plates.ParseInventory(in.Inventory)
		if err != nil {
			return mcp.NewToolResultError("invalid inventory: " + err.Error()), nil
		}
		lr.Inventory = inv
	}

	strategy := h.defaults.Strategy
	if in.Strategy != "" {
		s, err := plates.ParseStrategy(in.Strategy)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		strategy = s
	}

	loadout, err := h.calc.SolvePlates(ctx, lr, strategy)
	if err != nil {
		return h.toolError("solve_plates", err), nil
	}
	return jsonResult(loadout), nil
}

func (h *handlers) getRPETable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bias, err := h.bias(req.GetString("bias", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	table, err := h.calc.RPETable(ctx, bias)
	if err != nil {
		return h.toolError("get_rpe_table", err), nil
	}
	return jsonResult(table), nil
}

func (h *handlers) bias(s string) (rpe.Bias, error) {
	if s == "" {
		return h.defaults.Bias, nil
	}
	return rpe.ParseBias(s)
}

// toolError reports invalid input back to the model as is and logs anything
// else as a failure.
func (h *handlers) toolError(tool string, err error) *mcp.CallToolResult {
	if isInputError(err) {
		return mcp.NewToolResultError(err.Error())
	}
	h.log.Error("mcp "+tool, "error", err)
	return mcp.NewToolResultError("calculation failed: " + err.Error())
}

func jsonResult(v any) *mcp.CallToolResult {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed")
	}
	return result
}
