package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
	"github.com/OpenTraceLab/OpenTraceView/pkg/prop"
)

type cell struct{ v capture.Value }

func (c *cell) get() (capture.Value, error) { return c.v, nil }

func (c *cell) set(v capture.Value) error {
	c.v = v
	return nil
}

func TestEditorHint(t *testing.T) {
	c := &cell{v: capture.Uint64(0)}
	tests := []struct {
		name string
		p    prop.Property
		want string
	}{
		{"special text", prop.NewInt("Frame limit", "", "", &prop.Range{Min: 0, Max: 10}, c.get, c.set, "No Limit"), "No Limit"},
		{"range", prop.NewInt("Ratio", "", "%", &prop.Range{Min: 0, Max: 100}, c.get, c.set, ""), "[0, 100]%"},
		{"unit", prop.NewInt("Delay", "", " ms", nil, c.get, c.set, ""), "value (ms)"},
		{"double unit", prop.NewDouble("Scale", "", " V", c.get, c.set), "value (V)"},
		{"description", prop.NewString("Separator", "Column separator", c.get, c.set), "Column separator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := editorHint(tt.p); got != tt.want {
				t.Errorf("editorHint = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRowCommitRejectsOutOfRange(t *testing.T) {
	c := &cell{v: capture.Uint64(5)}
	p := prop.NewInt("Frame limit", "", "", &prop.Range{Min: 0, Max: 10}, c.get, c.set, "No Limit")
	r := newPropertyRow(p, nil)

	r.commit("42")
	if !errors.Is(r.err, prop.ErrOutOfRange) {
		t.Fatalf("err = %v, want ErrOutOfRange", r.err)
	}
	if c.v != capture.Uint64(5) {
		t.Errorf("value changed to %v", c.v)
	}
	if r.editor.Text() != "5" || r.synced != "5" {
		t.Errorf("editor should show the device value, got %q", r.editor.Text())
	}

	r.commit("no limit")
	if r.err != nil {
		t.Fatalf("commit special text: %v", r.err)
	}
	if c.v != capture.Uint64(0) {
		t.Errorf("value = %v, want 0", c.v)
	}
	if r.editor.Text() != "No Limit" {
		t.Errorf("editor = %q, want No Limit", r.editor.Text())
	}
}

func TestValueLabel(t *testing.T) {
	failing := func() (capture.Value, error) { return nil, capture.ErrNotSupported }
	p := prop.NewBool("Filter", "", failing, nil)
	if got := valueLabel(p); !strings.HasPrefix(got, "<") || !strings.Contains(got, capture.ErrNotSupported.Error()) {
		t.Errorf("valueLabel = %q", got)
	}

	c := &cell{v: capture.Bool(true)}
	if got := valueLabel(prop.NewBool("Filter", "", c.get, c.set)); got == "" {
		t.Error("empty label for bool")
	}
}

func TestBindingKey(t *testing.T) {
	tests := []struct {
		state StateSnapshot
		want  string
	}{
		{StateSnapshot{SelectedIdx: -1}, ""},
		{StateSnapshot{SelectedIdx: 1}, "device:1"},
		{StateSnapshot{SelectedIdx: 1, ImportFormat: "csv"}, "format:csv"},
	}
	for _, tt := range tests {
		if got := bindingKey(tt.state); got != tt.want {
			t.Errorf("bindingKey(%+v) = %q, want %q", tt.state, got, tt.want)
		}
	}
}
