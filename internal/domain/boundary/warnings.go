package boundary

// WarningKind classifies a non-fatal data-quality finding.
type WarningKind string

// Warning kinds surfaced by detection.
const (
	// WarnInsufficientTurnEvents means fewer turn markers were captured
	// than the stroke/distance pattern requires; the boundary list was
	// built from what exists and the lap count may be short.
	WarnInsufficientTurnEvents WarningKind = "insufficient_turn_events"
)

// Warning is a non-fatal finding attached to a detection result.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

func newWarning(kind WarningKind, msg string) Warning {
	return Warning{Kind: kind, Message: msg}
}
