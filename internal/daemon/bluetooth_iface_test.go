package daemon

import (
	"testing"

	"github.com/godbus/dbus/v5"

	"github.com/xetibo/resetd/internal/bluetooth"
)

func TestToWireDevice_PreservesFieldsInWireOrder(t *testing.T) {
	d := bluetooth.NewDevice()
	d.RSSI = -42
	d.Name = "Headphones"
	d.Alias = "My Headphones"
	d.Path = dbus.ObjectPath("/org/bluez/hci0/dev_AA_BB")
	d.Adapter = dbus.ObjectPath("/org/bluez/hci0")
	d.Paired = true
	d.Connected = true
	d.Address = "AA:BB:CC:DD:EE:FF"

	w := toWireDevice(d)

	if w.RSSI != d.RSSI {
		t.Errorf("RSSI = %d; want %d", w.RSSI, d.RSSI)
	}
	if w.Name != d.Name {
		t.Errorf("Name = %q; want %q", w.Name, d.Name)
	}
	if w.Path != string(d.Path) {
		t.Errorf("Path = %q; want %q", w.Path, string(d.Path))
	}
	if w.Adapter != d.Adapter {
		t.Errorf("Adapter = %q; want %q", w.Adapter, d.Adapter)
	}
	if !w.Paired || !w.Connected {
		t.Errorf("w = %+v; want Paired and Connected true", w)
	}
	if w.Bonded || w.Trusted || w.Blocked {
		t.Errorf("w = %+v; want Bonded, Trusted, Blocked false", w)
	}
	if w.Address != d.Address {
		t.Errorf("Address = %q; want %q", w.Address, d.Address)
	}
}

func TestToWireDevices_PreservesOrderAndLength(t *testing.T) {
	a := bluetooth.NewDevice()
	a.Name = "A"
	b := bluetooth.NewDevice()
	b.Name = "B"

	got := toWireDevices([]bluetooth.Device{a, b})

	if len(got) != 2 {
		t.Fatalf("len(got) = %d; want 2", len(got))
	}
	if got[0].Name != "A" || got[1].Name != "B" {
		t.Errorf("got = %+v; want order [A, B]", got)
	}
}

func TestToWireDevices_EmptyInputYieldsEmptySlice(t *testing.T) {
	got := toWireDevices(nil)
	if got == nil {
		t.Error("toWireDevices(nil) = nil; want non-nil empty slice")
	}
	if len(got) != 0 {
		t.Errorf("len(got) = %d; want 0", len(got))
	}
}
