// Package dbusutil provides the generic, typed D-Bus call and property
// helpers that every provider-facing subsystem (wireless, bluetooth, audio)
// builds on, plus the property-map-to-record decoder shared by all of them.
//
// This is the provider utility layer of the daemon: it owns no subsystem
// knowledge, only the mechanics of calling a method or reading/writing a
// property with a bounded timeout.
package dbusutil

import (
	"context"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/godbus/dbus/v5"
)

// DefaultTimeout is the default per-call timeout for provider method calls.
const DefaultTimeout = 1000 * time.Millisecond

// PairTimeout is the timeout used for Bluetooth pairing calls, which can
// legitimately take much longer than a property read.
const PairTimeout = 10000 * time.Millisecond

const propertiesInterface = "org.freedesktop.DBus.Properties"

// Call invokes a method on a bus object and stores its reply into ret
// (which may be nil if the call has no out-arguments of interest).
func Call(conn *dbus.Conn, timeout time.Duration, service string, path dbus.ObjectPath, iface, method string, ret any, args ...any) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	obj := conn.Object(service, path)
	call := obj.CallWithContext(ctx, iface+"."+method, 0, args...)
	if call.Err != nil {
		return fault.Wrap(call.Err,
			fctx.With(ctx, "error_at", "dbusutil-call", "service", service, "path", string(path), "method", method),
			ftag.With(ftag.Internal),
			fmsg.With("cannot call method"),
		)
	}

	if ret == nil {
		return nil
	}

	return call.Store(ret)
}

// CallMulti invokes a method that returns more than one out-argument,
// storing each into the corresponding pointer in rets.
func CallMulti(conn *dbus.Conn, timeout time.Duration, service string, path dbus.ObjectPath, iface, method string, rets []any, args ...any) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	obj := conn.Object(service, path)
	call := obj.CallWithContext(ctx, iface+"."+method, 0, args...)
	if call.Err != nil {
		return fault.Wrap(call.Err,
			fctx.With(ctx, "error_at", "dbusutil-callmulti", "service", service, "path", string(path), "method", method),
			ftag.With(ftag.Internal),
			fmsg.With("cannot call method"),
		)
	}

	return call.Store(rets...)
}

// GetProperty reads a single property and stores it into ret.
func GetProperty(conn *dbus.Conn, timeout time.Duration, service string, path dbus.ObjectPath, iface, property string, ret any) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	obj := conn.Object(service, path)

	var variant dbus.Variant
	call := obj.CallWithContext(ctx, propertiesInterface+".Get", 0, iface, property)
	if call.Err != nil {
		return fault.Wrap(call.Err,
			fctx.With(ctx, "error_at", "dbusutil-getproperty", "service", service, "path", string(path), "property", property),
			ftag.With(ftag.Internal),
			fmsg.With("cannot read property"),
		)
	}
	if err := call.Store(&variant); err != nil {
		return err
	}

	return dbus.Store([]any{variant.Value()}, ret)
}

// GetAllProperties reads every property of an interface on an object.
func GetAllProperties(conn *dbus.Conn, timeout time.Duration, service string, path dbus.ObjectPath, iface string) (map[string]dbus.Variant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	obj := conn.Object(service, path)

	result := make(map[string]dbus.Variant)
	call := obj.CallWithContext(ctx, propertiesInterface+".GetAll", 0, iface)
	if call.Err != nil {
		return nil, fault.Wrap(call.Err,
			fctx.With(ctx, "error_at", "dbusutil-getallproperties", "service", service, "path", string(path)),
			ftag.With(ftag.Internal),
			fmsg.With("cannot read properties"),
		)
	}

	if err := call.Store(&result); err != nil {
		return nil, err
	}

	return result, nil
}

// SetProperty writes a single property.
func SetProperty(conn *dbus.Conn, timeout time.Duration, service string, path dbus.ObjectPath, iface, property string, value any) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	obj := conn.Object(service, path)
	call := obj.CallWithContext(ctx, propertiesInterface+".Set", 0, iface, property, dbus.MakeVariant(value))
	if call.Err != nil {
		return fault.Wrap(call.Err,
			fctx.With(ctx, "error_at", "dbusutil-setproperty", "service", service, "path", string(path), "property", property),
			ftag.With(ftag.Internal),
			fmsg.With("cannot write property"),
		)
	}

	return nil
}

// GetManagedObjects calls the standard ObjectManager.GetManagedObjects
// method, used by both the bluez and NetworkManager providers to enumerate
// their object trees in one round trip.
func GetManagedObjects(conn *dbus.Conn, timeout time.Duration, service string, path dbus.ObjectPath) (map[dbus.ObjectPath]map[string]map[string]dbus.Variant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	obj := conn.Object(service, path)

	result := make(map[dbus.ObjectPath]map[string]map[string]dbus.Variant)
	call := obj.CallWithContext(ctx, "org.freedesktop.DBus.ObjectManager.GetManagedObjects", 0)
	if call.Err != nil {
		return nil, fault.Wrap(call.Err,
			fctx.With(ctx, "error_at", "dbusutil-getmanagedobjects", "service", service, "path", string(path)),
			ftag.With(ftag.Internal),
			fmsg.With("cannot enumerate managed objects"),
		)
	}

	if err := call.Store(&result); err != nil {
		return nil, err
	}

	return result, nil
}
