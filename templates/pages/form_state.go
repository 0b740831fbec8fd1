package pages

// FormState holds the submitted (or stored) values of a form and the
// validation messages per field
type FormState struct {
	Action string
	IsEdit bool
	Values map[string]string
	Errors map[string]string
	// Error is shown above the form when it does not belong to a field
	Error string
}

// NewFormState creates an empty form posting to action
func NewFormState(action string) *FormState {
	return &FormState{
		Action: action,
		Values: map[string]string{},
		Errors: map[string]string{},
	}
}

// Get returns the value of a field
func (f *FormState) Get(name string) string {
	return f.Values[name]
}

// Set stores the value of a field
func (f *FormState) Set(name, value string) {
	f.Values[name] = value
}

// Checked reports whether a checkbox field is on
func (f *FormState) Checked(name string) bool {
	switch f.Values[name] {
	case "1", "on", "true":
		return true
	}
	return false
}

// Fail records a validation message. An unknown or empty field goes to Error.
func (f *FormState) Fail(field, message string) {
	if field == "" {
		f.Error = message
		return
	}
	f.Errors[field] = message
}
