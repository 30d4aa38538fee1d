package wireless

import "github.com/godbus/dbus/v5"

// NetworkManager D-Bus surface (org.freedesktop.NetworkManager). These are
// the only names this package hard-codes; every call goes through
// internal/dbusutil's generic helpers.
const (
	Service = "org.freedesktop.NetworkManager"

	rootPath     = dbus.ObjectPath("/org/freedesktop/NetworkManager")
	settingsPath = dbus.ObjectPath("/org/freedesktop/NetworkManager/Settings")

	ifaceNM               = "org.freedesktop.NetworkManager"
	ifaceDevice           = "org.freedesktop.NetworkManager.Device"
	ifaceDeviceWireless   = "org.freedesktop.NetworkManager.Device.Wireless"
	ifaceAccessPoint      = "org.freedesktop.NetworkManager.AccessPoint"
	ifaceActiveConnection = "org.freedesktop.NetworkManager.Connection.Active"
	ifaceSettings         = "org.freedesktop.NetworkManager.Settings"
	ifaceSettingsConn     = "org.freedesktop.NetworkManager.Settings.Connection"

	deviceTypeWifi = uint32(2)
)
