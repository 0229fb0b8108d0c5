package ui

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/OpenTraceView/pkg/binding"
	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
	"github.com/OpenTraceLab/OpenTraceView/pkg/formats"
	"github.com/OpenTraceLab/OpenTraceView/pkg/prop"
)

// bound is the part of a binding the panel needs.
type bound interface {
	Properties() []prop.Property
	OnChanged(fn func()) (cancel func())
}

// App drives the Gio property panel.
type App struct {
	Window  *app.Window
	Theme   *theme.Theme
	State   *AppState
	Logger  *slog.Logger
	Catalog *formats.Catalog

	ops op.Ops

	deviceMenu      *menu.DropdownMenu
	deviceMenuBtn   widget.Clickable
	deviceMenuCount int

	importMenu    *menu.DropdownMenu
	importMenuBtn widget.Clickable

	scanBtn widget.Clickable
	backBtn widget.Clickable

	scanIcon   *widget.Icon
	deviceIcon *widget.Icon

	propList layout.List
	logList  layout.List

	// boundTo identifies the object behind rows, see bindingKey.
	boundTo       string
	boundDevice   capture.Device
	rows          []*propertyRow
	cancelChanged func()
}

// New wires the Gio window, theme, and shared state together. A nil logger
// writes to the state's log pane.
func New(window *app.Window, state *AppState, catalog *formats.Catalog, logger *slog.Logger) *App {
	if state == nil {
		state = NewState()
	}
	if logger == nil {
		logger = slog.New(NewLogHandler(state, slog.LevelInfo))
	}
	th := theme.NewTheme("", nil, true)
	th.WithPalette(theme.Palette{
		Bg:         color.NRGBA{R: 245, G: 247, B: 253, A: 255},
		Fg:         color.NRGBA{R: 34, G: 37, B: 49, A: 255},
		ContrastBg: color.NRGBA{R: 80, G: 120, B: 255, A: 255},
		ContrastFg: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Bg2:        color.NRGBA{R: 225, G: 230, B: 244, A: 255},
	})

	a := &App{
		Window:   window,
		Theme:    th,
		State:    state,
		Logger:   logger,
		Catalog:  catalog,
		propList: layout.List{Axis: layout.Vertical},
		logList:  layout.List{Axis: layout.Vertical, ScrollToEnd: true},
	}
	a.scanIcon, _ = widget.NewIcon(icons.ActionAutorenew)
	a.deviceIcon, _ = widget.NewIcon(icons.ActionSettingsInputComponent)
	a.importMenu = a.buildImportMenu()
	return a
}

// Run processes Gio events until the window is closed.
func (a *App) Run() error {
	defer a.unbind()
	for {
		e := a.Window.Event()
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func (a *App) buildImportMenu() *menu.DropdownMenu {
	m := formats.NewImportMenu(a.Catalog, formats.Action{
		Label: "Show device settings",
		Run: func() {
			a.State.SetImportFormat("")
			a.invalidate()
		},
	})
	m.FormatSelected = func(f *formats.Format) {
		a.State.SetImportFormat(f.ID)
		a.Logger.Info("import format selected", "format", f.ID)
		a.invalidate()
	}

	var groups [][]menu.MenuOption
	var group []menu.MenuOption
	for i, entry := range m.Entries() {
		if entry.Separator {
			groups = append(groups, group)
			group = nil
			continue
		}
		idx := i
		label := entry.Label
		group = append(group, menu.MenuOption{
			OnClicked: func() error {
				return m.Activate(idx)
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, label)
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	if len(group) > 0 {
		groups = append(groups, group)
	}
	drop := menu.NewDropdownMenu(groups)
	drop.MaxWidth = unit.Dp(280)
	return drop
}

func (a *App) buildDeviceMenu(names []string) *menu.DropdownMenu {
	if len(names) == 0 {
		return nil
	}
	opts := make([]menu.MenuOption, 0, len(names))
	for i, name := range names {
		idx := i
		label := name
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				a.State.SelectDevice(idx)
				a.invalidate()
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, label)
				if idx == a.State.SelectedIndex() {
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

// bindingKey names the object the panel should show.
func bindingKey(state StateSnapshot) string {
	if state.ImportFormat != "" {
		return "format:" + state.ImportFormat
	}
	if state.SelectedIdx < 0 {
		return ""
	}
	return fmt.Sprintf("device:%d", state.SelectedIdx)
}

// syncBinding rebinds when the selection changed since the last frame.
func (a *App) syncBinding(state StateSnapshot) {
	key := bindingKey(state)
	if key == a.boundTo {
		return
	}
	a.unbind()
	a.boundTo = key

	var b bound
	switch {
	case state.ImportFormat != "":
		f, err := a.Catalog.Find(state.ImportFormat)
		if err != nil {
			a.State.SetError(err)
			a.Logger.Error("import format unavailable", "error", err)
			return
		}
		b = formats.NewInputBinding(f)
		a.State.SetStatus(fmt.Sprintf("Import options: %s", f.Name))

	case state.SelectedIdx >= 0:
		dev := a.State.SelectedDevice()
		if dev == nil {
			return
		}
		if err := dev.Open(); err != nil {
			a.State.SetError(err)
			a.Logger.Error("device open failed", "device", dev.Info().FullName(), "error", err)
			return
		}
		a.boundDevice = dev
		b = binding.NewDevice(dev, binding.WithLogger(a.Logger))
		a.State.SetStatus(fmt.Sprintf("Device: %s", dev.Info().FullName()))

	default:
		return
	}

	a.State.SetError(nil)
	a.cancelChanged = b.OnChanged(func() {
		a.State.MarkChanged()
		a.Logger.Debug("configuration changed", "binding", a.boundTo)
		a.invalidate()
	})
	for _, p := range b.Properties() {
		a.rows = append(a.rows, newPropertyRow(p, a.Logger))
	}
	a.Logger.Info("properties bound", "binding", key, "count", len(a.rows))
}

func (a *App) unbind() {
	if a.cancelChanged != nil {
		a.cancelChanged()
		a.cancelChanged = nil
	}
	if a.boundDevice != nil {
		if err := a.boundDevice.Close(); err != nil {
			a.Logger.Warn("device close failed", "error", err)
		}
		a.boundDevice = nil
	}
	a.rows = nil
	a.boundTo = ""
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	state := a.State.Snapshot()
	if a.deviceMenu == nil || a.deviceMenuCount != len(state.Devices) {
		a.deviceMenu = a.buildDeviceMenu(state.Devices)
		a.deviceMenuCount = len(state.Devices)
	}
	a.syncBinding(state)

	paint.FillShape(gtx.Ops, a.Theme.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutTopBar(gtx, state)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.layoutProperties(gtx, state)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutLogPane(gtx, state)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutStatus(gtx, state)
		}),
	)
}

func (a *App) layoutTopBar(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	current := "No device"
	if state.SelectedIdx >= 0 && state.SelectedIdx < len(state.Devices) {
		current = state.Devices[state.SelectedIdx]
	}
	inset := layout.Inset{Left: unit.Dp(12), Right: unit.Dp(12), Top: unit.Dp(8), Bottom: unit.Dp(8)}
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if a.deviceIcon == nil {
					return layout.Dimensions{}
				}
				gtx.Constraints.Min.X = gtx.Dp(unit.Dp(20))
				return a.deviceIcon.Layout(gtx, a.Theme.Palette.Fg)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if a.deviceMenu != nil && a.deviceMenuBtn.Clicked(gtx) {
					a.deviceMenu.ToggleVisibility(gtx)
				}
				dims := material.Button(a.Theme.Theme, &a.deviceMenuBtn, current).Layout(gtx)
				if a.deviceMenu != nil {
					a.deviceMenu.Layout(gtx, a.Theme)
				}
				return dims
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if a.importMenuBtn.Clicked(gtx) {
					a.importMenu.ToggleVisibility(gtx)
				}
				dims := material.Button(a.Theme.Theme, &a.importMenuBtn, "Import").Layout(gtx)
				a.importMenu.Layout(gtx, a.Theme)
				return dims
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				for a.scanBtn.Clicked(gtx) {
					a.ScanHardware()
				}
				if a.scanIcon == nil {
					return material.Button(a.Theme.Theme, &a.scanBtn, "Scan").Layout(gtx)
				}
				return material.IconButton(a.Theme.Theme, &a.scanBtn, a.scanIcon, "Scan USB").Layout(gtx)
			}),
		)
	})
}

func (a *App) layoutProperties(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(4)}
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if state.ImportFormat == "" {
					return layout.Dimensions{}
				}
				for a.backBtn.Clicked(gtx) {
					a.State.SetImportFormat("")
					a.invalidate()
				}
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Flexed(1, material.H6(a.Theme.Theme, "Import options: "+state.ImportFormat).Layout),
					layout.Rigid(material.Button(a.Theme.Theme, &a.backBtn, "Back to device").Layout),
				)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				if len(a.rows) == 0 {
					return material.Body1(a.Theme.Theme, "No configurable properties.").Layout(gtx)
				}
				return a.propList.Layout(gtx, len(a.rows), func(gtx layout.Context, idx int) layout.Dimensions {
					return a.rows[idx].Layout(gtx, a.Theme)
				})
			}),
		)
	})
}

func (a *App) layoutLogPane(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	height := gtx.Dp(unit.Dp(140))
	gtx.Constraints.Min.Y = height
	gtx.Constraints.Max.Y = height
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, a.Theme.Bg2, clip.Rect{Max: gtx.Constraints.Max}.Op())
			return layout.Dimensions{Size: gtx.Constraints.Max}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6)}
			return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				if len(state.Logs) == 0 {
					return material.Caption(a.Theme.Theme, "Logs will appear here.").Layout(gtx)
				}
				return a.logList.Layout(gtx, len(state.Logs), func(gtx layout.Context, idx int) layout.Dimensions {
					if idx >= len(state.Logs) {
						return layout.Dimensions{}
					}
					return material.Caption(a.Theme.Theme, state.Logs[idx]).Layout(gtx)
				})
			})
		}),
	)
}

func (a *App) layoutStatus(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	statusLabel := fmt.Sprintf("Status: %s", state.Status)
	if state.LastError != nil {
		statusLabel = fmt.Sprintf("Error: %v", state.LastError)
	}
	hwLabel := fmt.Sprintf("USB: %d", len(state.Hardware))
	if state.Busy {
		hwLabel = "USB: scanning..."
	}

	inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6)}
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.Body2(a.Theme.Theme, fmt.Sprintf("Version: %s", state.AppVersion)).Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(18)}.Layout),
			layout.Rigid(material.Body2(a.Theme.Theme, hwLabel).Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(18)}.Layout),
			layout.Rigid(material.Body2(a.Theme.Theme, fmt.Sprintf("Changes: %d", state.Revision)).Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(a.Theme.Theme, statusLabel)
				if state.LastError != nil {
					lbl.Color = errorColor
				}
				return lbl.Layout(gtx)
			}),
		)
	})
}

// invalidate requests a new frame.
func (a *App) invalidate() {
	if a.Window != nil {
		a.Window.Invalidate()
	}
}

// ScanHardware enumerates USB capture devices in the background.
func (a *App) ScanHardware() {
	if a.State.Busy() {
		return
	}
	a.State.SetBusy(true)
	a.State.SetStatus("Scanning USB devices...")
	a.invalidate()

	go func() {
		defer func() {
			a.State.SetBusy(false)
			a.invalidate()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		infos, err := capture.DiscoverDevices(ctx)
		if err != nil {
			a.State.SetError(err)
			a.Logger.Error("usb scan failed", "error", err)
			a.State.SetStatus("USB scan failed")
			return
		}
		a.State.SetHardware(infos)
		for _, info := range infos {
			a.Logger.Info("found device", "name", info.FullName(), "driver", info.Driver)
		}
		a.State.SetStatus(fmt.Sprintf("Found %d device(s)", len(infos)))
	}()
}
