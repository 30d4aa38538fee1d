package wireless

import (
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestDedupeBySSID_KeepsConnectedFirst(t *testing.T) {
	aps := []AccessPoint{
		{SSID: []byte("home"), Connected: false, Path: dbus.ObjectPath("/ap/1")},
		{SSID: []byte("home"), Connected: true, Path: dbus.ObjectPath("/ap/2")},
		{SSID: []byte("office"), Connected: false, Path: dbus.ObjectPath("/ap/3")},
	}

	out := dedupeBySSID(aps)

	if len(out) != 2 {
		t.Fatalf("len(out) = %d; want 2", len(out))
	}
	if out[0].SSIDString() != "home" || !out[0].Connected {
		t.Errorf("out[0] = %+v; want connected home AP", out[0])
	}
}

func TestContainsPath(t *testing.T) {
	paths := []dbus.ObjectPath{"/a", "/b", "/c"}

	if !containsPath(paths, "/b") {
		t.Error("containsPath(_, \"/b\") = false; want true")
	}
	if containsPath(paths, "/z") {
		t.Error("containsPath(_, \"/z\") = true; want false")
	}
}
