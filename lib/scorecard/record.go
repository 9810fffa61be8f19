package scorecard

// Record is one raw result object exactly as the API returned it.
// Field keys are the flattened dotted paths requested through the
// `fields` parameter (e.g. "school.name"). Records round-trip through
// the snapshot store unmodified.
type Record map[string]any

// Canonical field paths served by the API.
const (
	FieldID                = "id"
	FieldName              = "school.name"
	FieldState             = "school.state"
	FieldTuitionInState    = "latest.cost.tuition.in_state"
	FieldTuitionOutOfState = "latest.cost.tuition.out_of_state"
	FieldCompletionRate    = "latest.completion.rate"
)

// DefaultFields is the field set requested when the caller doesn't
// specify one.
var DefaultFields = []string{
	FieldID,
	FieldName,
	FieldState,
	FieldTuitionInState,
	FieldTuitionOutOfState,
	FieldCompletionRate,
}

// School is the typed view of a Record. Every field is optional: the
// API omits or nulls out anything an institution didn't report.
type School struct {
	ID                *float64
	Name              *string
	State             *string
	TuitionInState    *float64
	TuitionOutOfState *float64
	CompletionRate    *float64
}

func (r Record) number(key string) *float64 {
	v, ok := r[key].(float64)
	if !ok {
		return nil
	}
	return &v
}

func (r Record) text(key string) *string {
	v, ok := r[key].(string)
	if !ok {
		return nil
	}
	return &v
}

// School extracts the documented fields from a raw record,
// best-effort. Absent or null keys become nil pointers.
func (r Record) School() School {
	return School{
		ID:                r.number(FieldID),
		Name:              r.text(FieldName),
		State:             r.text(FieldState),
		TuitionInState:    r.number(FieldTuitionInState),
		TuitionOutOfState: r.number(FieldTuitionOutOfState),
		CompletionRate:    r.number(FieldCompletionRate),
	}
}
