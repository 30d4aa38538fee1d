// Package wireless implements the wireless controller: it models
// NetworkManager's access points and devices, drives the
// connect/disconnect state machines, and runs the topology listener.
package wireless

import (
	"time"

	"github.com/godbus/dbus/v5"
)

// RootPath is the sentinel "no connection" object path NetworkManager uses.
const RootPath = dbus.ObjectPath("/")

// AccessPoint models a single advertised wireless network, materialized on
// demand from a provider object; it is never cached across calls except as
// the current device's active access point.
type AccessPoint struct {
	SSID                 []byte          `dbus:"Ssid"`
	Strength             byte            `dbus:"Strength"`
	AssociatedConnection dbus.ObjectPath `dbus:"-"`
	Path                 dbus.ObjectPath `dbus:"-"`
	Connected            bool            `dbus:"-"`
	Stored               bool            `dbus:"-"`
}

// SSIDString returns the access point's SSID decoded as UTF-8.
func (a AccessPoint) SSIDString() string {
	return string(a.SSID)
}

// Device models a wireless network interface and the connection state
// NetworkManager currently reports for it.
type Device struct {
	Path              dbus.ObjectPath
	Name              string
	CurrentConnection dbus.ObjectPath
	AccessPoint       *AccessPoint
	Connected         bool
}

// StoredConnection is a saved connection profile that carries an SSID.
type StoredConnection struct {
	Path dbus.ObjectPath
	SSID []byte
}

// NetworkManager active-connection state values.
const (
	activeConnStateActivating = uint32(1)
	activeConnStateActivated  = uint32(2)
)

const rescanMinInterval = 10 * time.Second
