package capture

import (
	"context"
	"fmt"

	"github.com/google/gousb"
)

type knownUSBDevice struct {
	VendorID  uint16
	ProductID uint16
	Driver    string
	Vendor    string
	Model     string
}

var knownUSBDevices = []knownUSBDevice{
	{VendorID: 0x0925, ProductID: 0x3881, Driver: "fx2lafw", Vendor: "Saleae", Model: "Logic"},
	{VendorID: 0x1d50, ProductID: 0x608c, Driver: "fx2lafw", Vendor: "sigrok", Model: "FX2 LA (8ch)"},
	{VendorID: 0x1d50, ProductID: 0x608d, Driver: "fx2lafw", Vendor: "sigrok", Model: "FX2 LA (16ch)"},
	{VendorID: 0x08a9, ProductID: 0x0014, Driver: "fx2lafw", Vendor: "CWAV", Model: "USBee AX"},
	{VendorID: 0x2a0e, ProductID: 0x0020, Driver: "dreamsourcelab-dslogic", Vendor: "DreamSourceLab", Model: "DSLogic Plus"},
	{VendorID: 0x04b5, ProductID: 0x6022, Driver: "hantek-6xxx", Vendor: "Hantek", Model: "6022BE"},
	{VendorID: 0x1ab1, ProductID: 0x04ce, Driver: "rigol-ds", Vendor: "Rigol", Model: "DS1000Z"},
}

// DiscoverDevices enumerates connected USB capture devices that match known
// VID/PID pairs.
func DiscoverDevices(ctx context.Context) ([]DeviceInfo, error) {
	var results []DeviceInfo
	usb := gousb.NewContext()
	defer usb.Close()

	_, err := usb.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		if info, ok := classifyUSBDevice(desc); ok {
			results = append(results, info)
		}
		return false
	})
	if err != nil && err != gousb.ErrorAccess {
		return results, fmt.Errorf("capture: usb enumeration: %w", err)
	}

	return results, nil
}

func classifyUSBDevice(desc *gousb.DeviceDesc) (DeviceInfo, bool) {
	for _, known := range knownUSBDevices {
		if uint16(desc.Vendor) == known.VendorID && uint16(desc.Product) == known.ProductID {
			return DeviceInfo{
				Driver:     known.Driver,
				Vendor:     known.Vendor,
				Model:      known.Model,
				Connection: fmt.Sprintf("usb/%d.%d", desc.Bus, desc.Address),
			}, true
		}
	}
	return DeviceInfo{}, false
}
