package checkout

// State is the checkout submission lifecycle state
type State string

const (
	// StateEditing is the initial state: the user is typing into fields
	StateEditing State = "editing"
	// StateSubmitting means an order submission is in flight; re-entry is blocked
	StateSubmitting State = "submitting"
	// StateSuccess means the order was accepted; the cart clears after a delay
	StateSuccess State = "success"
)

// FormState is a snapshot of the checkout form: field values, field-scoped
// validation errors and the submission flags
type FormState struct {
	Fields        map[string]string `json:"fields"`
	Errors        map[string]string `json:"errors"`
	DeliveryDate  string            `json:"deliveryDate"`
	Submitting    bool              `json:"submitting"`
	SubmitSuccess bool              `json:"submitSuccess"`
}

// NewFormState returns an empty editing-state form
func NewFormState() FormState {
	return FormState{
		Fields: make(map[string]string),
		Errors: make(map[string]string),
	}
}

// clone deep-copies the snapshot so callers cannot mutate the aggregate's maps
func (s FormState) clone() FormState {
	out := FormState{
		Fields:        make(map[string]string, len(s.Fields)),
		Errors:        make(map[string]string, len(s.Errors)),
		DeliveryDate:  s.DeliveryDate,
		Submitting:    s.Submitting,
		SubmitSuccess: s.SubmitSuccess,
	}
	for k, v := range s.Fields {
		out.Fields[k] = v
	}
	for k, v := range s.Errors {
		out.Errors[k] = v
	}
	return out
}
