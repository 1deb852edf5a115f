package restriction

// FieldTypeBoolean marks a field whose only meaningful value is TruthValue.
// Admin surfaces should render such fields as checkboxes.
const FieldTypeBoolean = "BOOLEAN"

// Field describes the attribute controlling a single restriction, in a form
// an administrative attribute-editing surface can render. SessionGate does
// not implement that surface; it only publishes the catalog's shape so that
// restriction state can be read and written as ordinary attributes.
type Field struct {
	// Name is the canonical attribute name backing this field.
	Name string `json:"name"`

	// Type is the field type. Every restriction field is FieldTypeBoolean.
	Type string `json:"type"`

	// TruthValue is the attribute value denoting "enabled".
	TruthValue string `json:"truthValue"`

	// Description is a human-readable summary of the restriction.
	Description string `json:"description"`
}

// Form groups the restriction fields under a single named section.
type Form struct {
	// Name identifies the section, e.g. "addl-restrict".
	Name string `json:"name"`

	// Fields are the attribute fields in this section.
	Fields []Field `json:"fields"`
}

// FormName is the section name under which restriction attributes are
// grouped on admin surfaces.
const FormName = "addl-restrict"

// AsField returns the Field describing the attribute controlling whether
// this restriction is enabled.
func (r Restriction) AsField() Field {
	return Field{
		Name:        r.AttributeName(),
		Type:        FieldTypeBoolean,
		TruthValue:  TruthValue,
		Description: r.Description(),
	}
}

// Attributes returns the form describing every restriction attribute in the
// catalog. Hosts append this to whatever attribute forms they already expose
// for users and groups.
func Attributes() Form {
	fields := make([]Field, 0, len(catalog))
	for _, r := range catalog {
		fields = append(fields, r.AsField())
	}
	return Form{Name: FormName, Fields: fields}
}

// FilterAttributes returns a copy of the given attribute map with
// restriction attributes made visible or hidden depending on whether the
// caller holds administrative rights over the subject.
//
// For administrators every restriction attribute is guaranteed to be present
// (absent ones are added with an empty value so editing surfaces render
// them). For everyone else all restriction attributes are stripped so the
// associated state can be neither read nor, when the result is written back,
// modified. Determining administrative rights is the host's responsibility.
func FilterAttributes(isAdmin bool, attributes map[string]string) map[string]string {
	filtered := make(map[string]string, len(attributes)+len(catalog))
	for name, value := range attributes {
		filtered[name] = value
	}

	for _, r := range catalog {
		name := r.AttributeName()
		if isAdmin {
			if _, ok := filtered[name]; !ok {
				filtered[name] = ""
			}
		} else {
			delete(filtered, name)
		}
	}

	return filtered
}
