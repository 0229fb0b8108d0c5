package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"

	"github.com/OpenTraceLab/OpenTraceView/pkg/prop"
)

var errorColor = color.NRGBA{R: 200, G: 40, B: 40, A: 255}

// propertyRow holds the widgets editing one bound property.
type propertyRow struct {
	prop   prop.Property
	logger *slog.Logger

	check widget.Bool

	editor widget.Editor
	// synced is the label last copied into the editor. While the editor
	// text differs from it the user is typing and the value is not refreshed.
	synced string

	choices   *menu.DropdownMenu
	choiceBtn widget.Clickable

	err error
}

func newPropertyRow(p prop.Property, logger *slog.Logger) *propertyRow {
	r := &propertyRow{prop: p, logger: logger}
	r.editor.SingleLine = true
	r.editor.Submit = true
	if e, ok := p.(*prop.Enum); ok {
		r.choices = r.buildChoiceMenu(e)
	}
	return r
}

func (r *propertyRow) buildChoiceMenu(e *prop.Enum) *menu.DropdownMenu {
	values := e.Values()
	if len(values) == 0 {
		return nil
	}
	opts := make([]menu.MenuOption, 0, len(values))
	for i, v := range values {
		idx := i
		label := v.Label
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				r.setError(e.SetIndex(idx))
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, label)
				if sel, err := e.Selected(); err == nil && sel == idx {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(220)
	return drop
}

// commit writes user text to the property and resynchronizes the editor.
func (r *propertyRow) commit(text string) {
	r.setError(prop.SetFromText(r.prop, text))
	if label, err := r.prop.Label(); err == nil {
		r.editor.SetText(label)
		r.synced = label
	}
}

func (r *propertyRow) setError(err error) {
	r.err = err
	if err != nil && r.logger != nil {
		r.logger.Warn("property not set", "property", r.prop.Name(), "error", err)
	}
}

// editorHint is the placeholder of a text row: the special value text or
// the accepted range of Int properties, the unit of Double properties.
func editorHint(p prop.Property) string {
	switch p := p.(type) {
	case *prop.Int:
		if s := p.SpecialValueText(); s != "" {
			return s
		}
		if rng, ok := p.Range(); ok {
			return rng.String() + p.Suffix()
		}
		if p.Suffix() != "" {
			return unitHint(p.Suffix())
		}
	case *prop.Double:
		if p.Suffix() != "" {
			return unitHint(p.Suffix())
		}
	}
	return p.Desc()
}

func unitHint(suffix string) string {
	return fmt.Sprintf("value (%s)", strings.TrimSpace(suffix))
}

// valueLabel renders the current value, or the read error.
func valueLabel(p prop.Property) string {
	label, err := p.Label()
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return label
}

func (r *propertyRow) Layout(gtx layout.Context, th *theme.Theme) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Flexed(0.45, func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body2(th.Theme, r.prop.Name())
						return lbl.Layout(gtx)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Flexed(0.55, func(gtx layout.Context) layout.Dimensions {
						return r.layoutControl(gtx, th)
					}),
				)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if r.err == nil {
					return layout.Dimensions{}
				}
				lbl := material.Caption(th.Theme, r.err.Error())
				lbl.Color = errorColor
				return lbl.Layout(gtx)
			}),
		)
	})
}

func (r *propertyRow) layoutControl(gtx layout.Context, th *theme.Theme) layout.Dimensions {
	switch p := r.prop.(type) {
	case *prop.Bool:
		if r.check.Update(gtx) {
			r.setError(p.SetBool(r.check.Value))
		}
		if on, err := p.Value(); err == nil {
			r.check.Value = on
		}
		return material.CheckBox(th.Theme, &r.check, valueLabel(p)).Layout(gtx)

	case *prop.Enum:
		if r.choices == nil {
			return material.Body2(th.Theme, valueLabel(p)).Layout(gtx)
		}
		if r.choiceBtn.Clicked(gtx) {
			r.choices.ToggleVisibility(gtx)
		}
		dims := material.Button(th.Theme, &r.choiceBtn, valueLabel(p)).Layout(gtx)
		r.choices.Layout(gtx, th)
		return dims
	}

	for {
		ev, ok := r.editor.Update(gtx)
		if !ok {
			break
		}
		if _, submit := ev.(widget.SubmitEvent); submit {
			r.commit(r.editor.Text())
		}
	}
	if r.editor.Text() == r.synced {
		if label, err := r.prop.Label(); err == nil && label != r.synced {
			r.editor.SetText(label)
			r.synced = label
		}
	}
	return material.Editor(th.Theme, &r.editor, editorHint(r.prop)).Layout(gtx)
}
