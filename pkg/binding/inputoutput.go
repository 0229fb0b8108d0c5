package binding

import (
	"sort"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
	"github.com/OpenTraceLab/OpenTraceView/pkg/prop"
)

// IOOption describes one option of an input or output module.
type IOOption struct {
	ID          string
	Name        string
	Description string
	Default     capture.Value
	// Values, when non-empty, restricts the option to these choices.
	Values []capture.Value
}

// InputOutput binds input/output module options. The selected values start
// at the option defaults and are kept in a map returned by Options.
type InputOutput struct {
	Binding

	options map[string]capture.Value
	ids     map[prop.Property]string
}

// NewInputOutput binds options in ID order. Options whose default value type
// has no property kind are left unbound but keep their default.
func NewInputOutput(options map[string]IOOption) *InputOutput {
	b := &InputOutput{
		options: make(map[string]capture.Value, len(options)),
		ids:     make(map[prop.Property]string),
	}

	ids := make([]string, 0, len(options))
	for id := range options {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		opt := options[id]
		if opt.Default != nil {
			b.options[id] = opt.Default
		}
		if p := b.bindOption(id, opt); p != nil {
			b.add(p)
			b.ids[p] = id
		}
	}
	return b
}

// Options returns a copy of the currently selected option values.
func (b *InputOutput) Options() map[string]capture.Value {
	out := make(map[string]capture.Value, len(b.options))
	for k, v := range b.options {
		out[k] = v
	}
	return out
}

// OptionID returns the option identifier behind p.
func (b *InputOutput) OptionID(p prop.Property) (string, bool) {
	id, ok := b.ids[p]
	return id, ok
}

func (b *InputOutput) bindOption(id string, opt IOOption) prop.Property {
	name := opt.Name
	if name == "" {
		name = id
	}
	get := func() (capture.Value, error) {
		return b.options[id], nil
	}
	set := func(v capture.Value) error {
		b.options[id] = v
		b.configChanged()
		return nil
	}

	if len(opt.Values) > 0 {
		values := make([]prop.EnumValue, 0, len(opt.Values))
		for _, v := range opt.Values {
			values = append(values, prop.EnumValue{Value: v, Label: PrintValue(v)})
		}
		return prop.NewEnum(name, opt.Description, values, get, set)
	}

	switch opt.Default.(type) {
	case capture.Bool:
		return prop.NewBool(name, opt.Description, get, set)
	case capture.Int64, capture.Uint64:
		return prop.NewInt(name, opt.Description, "", nil, get, set, "").WithDataType(opt.Default.Type())
	case capture.Float64:
		return prop.NewDouble(name, opt.Description, "", get, set)
	case capture.String:
		return prop.NewString(name, opt.Description, get, set)
	}
	return nil
}
