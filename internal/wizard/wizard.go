// Package wizard models multi-step creation forms as a finite sequence of
// steps, each owning a set of fields and the subset that must be filled
// before the form may advance.
package wizard

import (
	"errors"
	"strings"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
)

var (
	ErrUnknownForm = errors.New("unknown form")
	ErrCompleted   = errors.New("form already completed")
)

type Step struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Fields   []string `json:"fields"`
	Required []string `json:"required"`
}

type Definition struct {
	Kind  string `json:"kind"`
	Steps []Step `json:"steps"`
}

// Missing returns the required fields of step i absent from values.
func (d Definition) Missing(i int, values map[string]string) []string {
	var missing []string
	for _, f := range d.Steps[i].Required {
		if strings.TrimSpace(values[f]) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Validate checks every step in order and reports the first incomplete one
// as a *entity.ValidationError.
func (d Definition) Validate(values map[string]string) error {
	for i, step := range d.Steps {
		if missing := d.Missing(i, values); len(missing) > 0 {
			verr := &entity.ValidationError{Step: step.Name, Fields: make(map[string]string, len(missing))}
			for _, f := range missing {
				verr.Fields[f] = f + " is required"
			}
			return verr
		}
	}
	return nil
}

// Form is a client-side walk through a Definition.
type Form struct {
	def     Definition
	current int
	values  map[string]string
}

func NewForm(def Definition) *Form {
	return &Form{def: def, values: map[string]string{}}
}

func (f *Form) Set(field, value string) { f.values[field] = value }

func (f *Form) Values() map[string]string { return f.values }

// Current returns the active step. It is the zero Step once Done.
func (f *Form) Current() Step {
	if f.Done() {
		return Step{}
	}
	return f.def.Steps[f.current]
}

func (f *Form) Done() bool { return f.current >= len(f.def.Steps) }

// Next validates the current step and advances past it.
func (f *Form) Next() error {
	if f.Done() {
		return ErrCompleted
	}
	if missing := f.def.Missing(f.current, f.values); len(missing) > 0 {
		verr := &entity.ValidationError{Step: f.def.Steps[f.current].Name, Fields: map[string]string{}}
		for _, m := range missing {
			verr.Fields[m] = m + " is required"
		}
		return verr
	}
	f.current++
	return nil
}

// Back returns to the previous step; values are kept.
func (f *Form) Back() {
	if f.current > 0 {
		f.current--
	}
}
