package pipeline

// Phase identifies a stage of the synthesis pipeline in a progress event.
type Phase string

// Pipeline phases, in emission order.
const (
	PhaseBuildingSpec         Phase = "building_spec"
	PhaseGeneratingFacets     Phase = "generating_facets"
	PhaseClampingNutrition    Phase = "clamping_nutrition"
	PhaseCheckingUniqueness   Phase = "checking_uniqueness"
	PhaseRegeneratingIdentity Phase = "regenerating_identity"
	PhaseQualityAssurance     Phase = "quality_assurance"
	PhaseAssembling           Phase = "assembling"
	PhaseComplete             Phase = "complete"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Phase      Phase   `json:"phase"`
	Progress   float64 `json:"progress"`
	Message    string  `json:"message"`
	IsComplete bool    `json:"is_complete"`
	RunID      string  `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// reporter emits ordered progress events for one run, guaranteeing that
// exactly one completion event terminates the sequence and that the reported
// fraction never goes backwards.
type reporter struct {
	cb       ProgressCallback
	runID    string
	last     float64
	complete bool
}

func newReporter(cb ProgressCallback, runID string) *reporter {
	return &reporter{cb: cb, runID: runID}
}

func (r *reporter) emit(phase Phase, progress float64, message string) {
	if r.cb == nil || r.complete {
		return
	}
	if progress < r.last {
		progress = r.last
	}
	if progress > 1 {
		progress = 1
	}
	r.last = progress
	r.cb(ProgressEvent{
		Phase:    phase,
		Progress: progress,
		Message:  message,
		RunID:    r.runID,
	})
}

func (r *reporter) finish(message string) {
	if r.cb == nil || r.complete {
		return
	}
	r.complete = true
	r.cb(ProgressEvent{
		Phase:      PhaseComplete,
		Progress:   1,
		Message:    message,
		IsComplete: true,
		RunID:      r.runID,
	})
}
