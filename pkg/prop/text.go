package prop

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
)

// ErrBadText is returned by SetFromText when text does not parse for the
// property kind.
var ErrBadText = errors.New("prop: cannot parse value")

// SetFromText parses user input for p and writes it. Int properties accept
// their special value text and an optional suffix; Enum properties accept a
// choice label or the raw value text. Int values outside the range are
// rejected with ErrOutOfRange.
func SetFromText(p Property, text string) error {
	text = strings.TrimSpace(text)
	switch p := p.(type) {
	case *Bool:
		v, err := capture.ParseValue(capture.TypeBool, text)
		if err != nil {
			return fmt.Errorf("prop: %s: %q: %w", p.name, text, ErrBadText)
		}
		return p.SetBool(bool(v.(capture.Bool)))

	case *Int:
		n, err := p.Parse(text)
		if err != nil {
			return err
		}
		return p.SetInt(n)

	case *Enum:
		if err := p.SetLabel(text); err == nil || !errors.Is(err, ErrNoChoice) {
			return err
		}
		for i, ev := range p.values {
			if ev.Value != nil && ev.Value.String() == text {
				return p.SetIndex(i)
			}
		}
		return fmt.Errorf("prop: %s: %q: %w", p.name, text, ErrNoChoice)

	case *Double:
		f, err := strconv.ParseFloat(strings.TrimSuffix(text, p.suffix), 64)
		if err != nil {
			return fmt.Errorf("prop: %s: %q: %w", p.name, text, ErrBadText)
		}
		return p.SetFloat(f)

	case *String:
		return p.SetText(text)
	}
	return fmt.Errorf("prop: %s: unsupported property kind %s", p.Name(), p.Kind())
}

// Parse converts display text back to an integer. The special value text maps
// to the range minimum.
func (p *Int) Parse(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if p.specialText != "" && p.rng != nil && strings.EqualFold(text, p.specialText) {
		return p.rng.Min, nil
	}
	if p.suffix != "" {
		text = strings.TrimSpace(strings.TrimSuffix(text, p.suffix))
	}
	n, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("prop: %s: %q: %w", p.name, text, ErrBadText)
	}
	return n, nil
}
