package render

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "formkit-form"
	ClassField   ChromeClass = "formkit-field"
	ClassLabel   ChromeClass = "formkit-label"
	ClassError   ChromeClass = "formkit-error"
	ClassActions ChromeClass = "formkit-actions"
	ClassHidden  ChromeClass = "formkit-hidden"
)

// ChromeClasses carries the CSS classes applied to form chrome. Zero
// values fall back to the defaults.
type ChromeClasses struct {
	Form    string
	Field   string
	Label   string
	Error   string
	Actions string
}

// DefaultChromeClasses returns the built-in class names.
func DefaultChromeClasses() ChromeClasses {
	return ChromeClasses{
		Form:    string(ClassForm),
		Field:   string(ClassField),
		Label:   string(ClassLabel),
		Error:   string(ClassError),
		Actions: string(ClassActions),
	}
}

func (c ChromeClasses) withDefaults() ChromeClasses {
	defaults := DefaultChromeClasses()
	if c.Form == "" {
		c.Form = defaults.Form
	}
	if c.Field == "" {
		c.Field = defaults.Field
	}
	if c.Label == "" {
		c.Label = defaults.Label
	}
	if c.Error == "" {
		c.Error = defaults.Error
	}
	if c.Actions == "" {
		c.Actions = defaults.Actions
	}
	return c
}
