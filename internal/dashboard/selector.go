package dashboard

// Option is one entry in a selector. Value and Text are both the dimension value.
type Option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// Selector is a single-choice control such as a dropdown.
type Selector interface {
	ID() string
	SetOptions(options []Option)
	Value() string
	OnChange(handler func())
}

// Dropdown is an in-memory Selector. Change handlers run synchronously on
// the caller's goroutine.
type Dropdown struct {
	id       string
	options  []Option
	value    string
	handlers []func()
}

func NewDropdown(id string) *Dropdown {
	return &Dropdown{id: id}
}

func (d *Dropdown) ID() string {
	return d.id
}

// SetOptions appends options. The first option becomes the value of an
// empty dropdown, as a browser select element would do.
func (d *Dropdown) SetOptions(options []Option) {
	d.options = append(d.options, options...)
	if d.value == "" && len(d.options) > 0 {
		d.value = d.options[0].Value
	}
}

func (d *Dropdown) Options() []Option {
	return d.options
}

func (d *Dropdown) Value() string {
	return d.value
}

func (d *Dropdown) OnChange(handler func()) {
	d.handlers = append(d.handlers, handler)
}

// Select sets the current value and fires the change handlers. Values that
// are not among the options are accepted as-is; the engine treats them as
// matching nothing.
func (d *Dropdown) Select(value string) {
	d.value = value
	for _, h := range d.handlers {
		h()
	}
}

// SetValue sets the current value without firing change handlers.
func (d *Dropdown) SetValue(value string) {
	d.value = value
}

// Selected reports whether value is the current selection of d.
func (d *Dropdown) Selected(value string) bool {
	return d.value == value
}
