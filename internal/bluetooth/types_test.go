package bluetooth_test

import (
	"testing"

	"github.com/xetibo/resetd/internal/bluetooth"
)

func TestNewDevice_DefaultsRSSI(t *testing.T) {
	d := bluetooth.NewDevice()

	if d.RSSI != -1 {
		t.Errorf("RSSI = %d; want -1", d.RSSI)
	}
	if d.Name != "" || d.Paired || d.Connected {
		t.Errorf("NewDevice() = %+v; want all other fields zero", d)
	}
}
