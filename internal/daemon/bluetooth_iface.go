package daemon

import (
	"github.com/godbus/dbus/v5"

	"github.com/xetibo/resetd/internal/bluetooth"
)

// wireBluetoothDevice is the fixed struct shape published on the bus;
// bluetooth.Device's field order is keyed to bluez's property names instead,
// so every device that crosses the Bluetooth interface is converted through
// this type.
type wireBluetoothDevice struct {
	RSSI      int16
	Name      string
	Alias     string
	Path      string
	Adapter   dbus.ObjectPath
	Paired    bool
	Bonded    bool
	Trusted   bool
	Connected bool
	Blocked   bool
	Icon      string
	Address   string
}

func toWireDevice(d bluetooth.Device) wireBluetoothDevice {
	return wireBluetoothDevice{
		RSSI:      d.RSSI,
		Name:      d.Name,
		Alias:     d.Alias,
		Path:      string(d.Path),
		Adapter:   d.Adapter,
		Paired:    d.Paired,
		Bonded:    d.Bonded,
		Trusted:   d.Trusted,
		Connected: d.Connected,
		Blocked:   d.Blocked,
		Icon:      d.Icon,
		Address:   d.Address,
	}
}

func toWireDevices(devices []bluetooth.Device) []wireBluetoothDevice {
	out := make([]wireBluetoothDevice, 0, len(devices))
	for _, d := range devices {
		out = append(out, toWireDevice(d))
	}
	return out
}

// bluetoothIface implements <ns>.Bluetooth. Pairing-agent
// callbacks are exported separately by bluetooth.Agent.Register on the
// system bus; this type only carries the controller-facing operations.
type bluetoothIface struct {
	ctl   *bluetooth.Controller
	agent *bluetooth.Agent
}

func (b *bluetoothIface) StartBluetoothScan() (bool, *dbus.Error) {
	return b.ctl.StartBluetoothScan(), nil
}

func (b *bluetoothIface) StopBluetoothScan() (bool, *dbus.Error) {
	return b.ctl.StopBluetoothScan(), nil
}

func (b *bluetoothIface) StartBluetoothListener(durationMS int32) (bool, *dbus.Error) {
	return b.ctl.StartBluetoothListener(int(durationMS)), nil
}

func (b *bluetoothIface) StopBluetoothListener() (bool, *dbus.Error) {
	return b.ctl.StopBluetoothListener(), nil
}

func (b *bluetoothIface) GetBluetoothAdapters() ([]bluetooth.Adapter, *dbus.Error) {
	return b.ctl.GetBluetoothAdapters(), nil
}

func (b *bluetoothIface) GetCurrentBluetoothAdapter() (bluetooth.Adapter, *dbus.Error) {
	a, err := b.ctl.GetCurrentBluetoothAdapter()
	if err != nil {
		return bluetooth.Adapter{}, dbus.MakeFailedError(err)
	}
	return a, nil
}

func (b *bluetoothIface) SetBluetoothAdapter(path dbus.ObjectPath) (bool, *dbus.Error) {
	return b.ctl.SetBluetoothAdapter(path), nil
}

func (b *bluetoothIface) ConnectToBluetoothDevice(path dbus.ObjectPath) (bool, *dbus.Error) {
	return b.ctl.ConnectToBluetoothDevice(path), nil
}

func (b *bluetoothIface) PairWithBluetoothDevice(path dbus.ObjectPath) (bool, *dbus.Error) {
	return b.ctl.PairWithBluetoothDevice(path, b.agent), nil
}

func (b *bluetoothIface) DisconnectFromBluetoothDevice(path dbus.ObjectPath) (bool, *dbus.Error) {
	return b.ctl.DisconnectFromBluetoothDevice(path), nil
}

func (b *bluetoothIface) RemoveDevicePairing(path dbus.ObjectPath) (bool, *dbus.Error) {
	return b.ctl.RemoveDevicePairing(path), nil
}

func (b *bluetoothIface) TrustBluetoothDevice(path dbus.ObjectPath, trusted bool) (bool, *dbus.Error) {
	return b.ctl.TrustBluetoothDevice(path, trusted), nil
}

func (b *bluetoothIface) GetConnectedBluetoothDevices() ([]wireBluetoothDevice, *dbus.Error) {
	devices, err := b.ctl.GetConnectedBluetoothDevices()
	if err != nil {
		return nil, dbus.MakeFailedError(err)
	}
	return toWireDevices(devices), nil
}

func (b *bluetoothIface) GetBluetoothDevices() ([]wireBluetoothDevice, *dbus.Error) {
	devices, err := b.ctl.GetBluetoothDevices()
	if err != nil {
		return nil, dbus.MakeFailedError(err)
	}
	return toWireDevices(devices), nil
}
