package pacing

// Flag is a non-fatal business-state marker recorded on a period. Flags are
// surfaced to callers alongside the numeric result; they never abort a run.
type Flag string

const (
	// FlagReserveFloorOverridePacing marks a period where honoring the
	// reserve floor took precedence over the pacing target: either cash was
	// withheld (net-of-buffer semantics) or the retained cash sits below
	// the effective buffer (capacity semantics, reserve underfunded).
	FlagReserveFloorOverridePacing Flag = "reserve_floor_override_pacing"

	// FlagMaxPerCohortCapBound marks a period where every active cohort hit
	// its cap and residual spill was returned to fund cash undeployed.
	FlagMaxPerCohortCapBound Flag = "max_per_cohort_cap_bound"

	// FlagPacingFloorNoPipeline marks a period with allocable capital but
	// no active cohort (a pipeline drought); the capital stays in fund cash
	// and is not carried forward as an increased future target.
	FlagPacingFloorNoPipeline Flag = "pacing_floor_triggered_no_pipeline"

	// FlagCapitalRecallProcessed marks a period in which a negative
	// distribution (clawback) reduced net cash.
	FlagCapitalRecallProcessed Flag = "capital_recall_processed"

	// FlagRecyclingApplied marks a period in which recycle-eligible
	// distribution proceeds were re-deployed within the same period.
	FlagRecyclingApplied Flag = "recycling_applied"

	// FlagCarryoverApplied marks a period whose target was increased by a
	// prior shortfall. Only ever set when FundParameters.CarryoverShortfall
	// is explicitly enabled.
	FlagCarryoverApplied Flag = "carryover_applied"
)
