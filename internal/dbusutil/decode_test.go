package dbusutil_test

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/xetibo/resetd/internal/dbusutil"
)

func TestDecodeVariantMap_MatchesByTagThenName(t *testing.T) {
	type target struct {
		Alias   string `dbus:"Name"`
		Powered bool
		Ignored string `dbus:"-"`
	}

	props := map[string]dbus.Variant{
		"Name":    dbus.MakeVariant("hci0"),
		"Powered": dbus.MakeVariant(true),
		"Ignored": dbus.MakeVariant("should not land"),
	}

	var out target
	if err := dbusutil.DecodeVariantMap(props, &out); err != nil {
		t.Fatalf("DecodeVariantMap returned error: %v", err)
	}

	if out.Alias != "hci0" {
		t.Errorf("Alias = %q; want %q", out.Alias, "hci0")
	}
	if !out.Powered {
		t.Error("Powered = false; want true")
	}
	if out.Ignored != "" {
		t.Errorf("Ignored = %q; want empty (dbus:\"-\" must be skipped)", out.Ignored)
	}
}

func TestDecodeVariantMap_MissingKeyLeavesZeroValue(t *testing.T) {
	type target struct {
		Address string
		RSSI    int16
	}

	props := map[string]dbus.Variant{
		"Address": dbus.MakeVariant("AA:BB:CC:DD:EE:FF"),
	}

	var out target
	if err := dbusutil.DecodeVariantMap(props, &out); err != nil {
		t.Fatalf("DecodeVariantMap returned error: %v", err)
	}

	if out.Address != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("Address = %q; want %q", out.Address, "AA:BB:CC:DD:EE:FF")
	}
	if out.RSSI != 0 {
		t.Errorf("RSSI = %d; want 0 (missing key must leave zero value)", out.RSSI)
	}
}

func TestDecodeVariantMap_TypeMismatchLeavesZeroValue(t *testing.T) {
	type target struct {
		Trusted bool
	}

	props := map[string]dbus.Variant{
		"Trusted": dbus.MakeVariant("not-a-bool"),
	}

	var out target
	if err := dbusutil.DecodeVariantMap(props, &out); err != nil {
		t.Fatalf("DecodeVariantMap returned error: %v", err)
	}

	if out.Trusted {
		t.Error("Trusted = true; want false (type mismatch must leave zero value)")
	}
}

func TestDecodeVariantMap_NumericConversion(t *testing.T) {
	type target struct {
		Class uint32
	}

	props := map[string]dbus.Variant{
		"Class": dbus.MakeVariant(int32(42)),
	}

	var out target
	if err := dbusutil.DecodeVariantMap(props, &out); err != nil {
		t.Fatalf("DecodeVariantMap returned error: %v", err)
	}

	if out.Class != 42 {
		t.Errorf("Class = %d; want 42", out.Class)
	}
}

func TestDecodeVariantMap_RejectsNonPointer(t *testing.T) {
	type target struct{ Name string }

	if err := dbusutil.DecodeVariantMap(map[string]dbus.Variant{}, target{}); err == nil {
		t.Error("DecodeVariantMap(non-pointer) = nil error; want error")
	}
}

func TestDecodeVariantMap_RejectsNonStructPointer(t *testing.T) {
	var s string
	if err := dbusutil.DecodeVariantMap(map[string]dbus.Variant{}, &s); err == nil {
		t.Error("DecodeVariantMap(*string) = nil error; want error")
	}
}
