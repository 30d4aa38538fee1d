package daemon

import (
	"github.com/godbus/dbus/v5"

	"github.com/xetibo/resetd/internal/wireless"
)

// wirelessIface implements <ns>.Wireless.
type wirelessIface struct {
	ctl *wireless.Controller
}

func (w *wirelessIface) ListAccessPoints() ([]wireless.AccessPoint, *dbus.Error) {
	aps, err := w.ctl.ListAccessPoints()
	if err != nil {
		return nil, dbus.MakeFailedError(err)
	}
	return aps, nil
}

func (w *wirelessIface) GetCurrentNetworkDevice() (wireless.Device, *dbus.Error) {
	dev, err := w.ctl.GetCurrentNetworkDevice()
	if err != nil {
		return wireless.Device{}, dbus.MakeFailedError(err)
	}
	return dev, nil
}

func (w *wirelessIface) GetAllNetworkDevices() ([]wireless.Device, *dbus.Error) {
	return w.ctl.GetAllNetworkDevices(), nil
}

func (w *wirelessIface) SetNetworkDevice(path dbus.ObjectPath) (bool, *dbus.Error) {
	return w.ctl.SetNetworkDevice(path), nil
}

func (w *wirelessIface) ConnectToKnownAccessPoint(ap wireless.AccessPoint) (bool, *dbus.Error) {
	return w.ctl.ConnectToKnownAccessPoint(ap), nil
}

func (w *wirelessIface) ConnectToNewAccessPoint(ap wireless.AccessPoint, password string) (bool, *dbus.Error) {
	return w.ctl.ConnectToNewAccessPoint(ap, password), nil
}

func (w *wirelessIface) DisconnectFromCurrentAccessPoint() (bool, *dbus.Error) {
	return w.ctl.DisconnectFromCurrentAccessPoint(), nil
}

func (w *wirelessIface) ListStoredConnections() ([]wireless.StoredConnection, *dbus.Error) {
	stored, err := w.ctl.ListStoredConnections()
	if err != nil {
		return nil, dbus.MakeFailedError(err)
	}
	return stored, nil
}

func (w *wirelessIface) GetConnectionSettings(path dbus.ObjectPath) (wireless.RawSettings, *dbus.Error) {
	settings, err := w.ctl.GetConnectionSettings(path)
	if err != nil {
		return nil, dbus.MakeFailedError(err)
	}
	return settings, nil
}

func (w *wirelessIface) SetConnectionSettings(path dbus.ObjectPath, settings wireless.RawSettings) (bool, *dbus.Error) {
	return w.ctl.SetConnectionSettings(path, settings), nil
}

func (w *wirelessIface) DeleteConnection(path dbus.ObjectPath) (bool, *dbus.Error) {
	return w.ctl.DeleteConnection(path), nil
}

func (w *wirelessIface) StartNetworkListener() (bool, *dbus.Error) {
	return w.ctl.StartNetworkListener(), nil
}

func (w *wirelessIface) StopNetworkListener() (bool, *dbus.Error) {
	return w.ctl.StopNetworkListener(), nil
}
