package daemon

import (
	"os"
	"time"

	"github.com/godbus/dbus/v5"
)

// baseIface implements <ns>.Daemon.
type baseIface struct {
	d *Daemon
}

func (b *baseIface) GetCapabilities() ([]string, *dbus.Error) {
	return capabilities, nil
}

func (b *baseIface) APIVersion() (string, *dbus.Error) {
	return apiVersion, nil
}

func (b *baseIface) RegisterClient(name string) (bool, *dbus.Error) {
	return b.d.RegisterClient(name), nil
}

func (b *baseIface) UnregisterClient(name string) (bool, *dbus.Error) {
	return b.d.UnregisterClient(name), nil
}

// Shutdown unregisters the Bluetooth agent, aborts the long-running
// connection task, and exits the process with a success code.
func (b *baseIface) Shutdown() *dbus.Error {
	b.d.Shutdown()
	go func() {
		time.Sleep(100 * time.Millisecond)
		os.Exit(0)
	}()
	return nil
}
