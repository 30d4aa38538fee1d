package bluetooth

import (
	"time"

	"github.com/godbus/dbus/v5"
)

// Adapter mirrors the subset of org.bluez.Adapter1 the daemon cares about.
type Adapter struct {
	Path        dbus.ObjectPath
	Alias       string `dbus:"Alias"`
	Address     string `dbus:"Address"`
	Powered     bool   `dbus:"Powered"`
	Discovering bool   `dbus:"Discovering"`
}

// Device mirrors the subset of org.bluez.Device1 the daemon cares about.
// RSSI defaults to -1 when the provider omits it; every flag defaults to
// false and every string to "" under the same rule.
type Device struct {
	Path      dbus.ObjectPath
	Name      string          `dbus:"Name"`
	Adapter   dbus.ObjectPath `dbus:"Adapter"`
	Alias     string          `dbus:"Alias"`
	Address   string          `dbus:"Address"`
	Icon      string          `dbus:"Icon"`
	Paired    bool            `dbus:"Paired"`
	Bonded    bool            `dbus:"Bonded"`
	Trusted   bool            `dbus:"Trusted"`
	Connected bool            `dbus:"Connected"`
	Blocked   bool            `dbus:"Blocked"`
	RSSI      int16           `dbus:"RSSI"`
}

// NewDevice returns a Device with RSSI defaulted to -1, marking an absent
// signal-strength reading.
func NewDevice() Device {
	return Device{RSSI: -1}
}

// scanDefaultDuration is the discovery duration New uses when Options gives
// none; StartBluetoothListener falls back to it when passed zero.
const scanDefaultDuration = 30 * time.Second
