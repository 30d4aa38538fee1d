package wireless_test

import (
	"bytes"
	"testing"

	"github.com/xetibo/resetd/internal/wireless"
)

func TestDecodeSettings_MissingSectionsDecodeToZeroValue(t *testing.T) {
	s := wireless.DecodeSettings(wireless.RawSettings{})

	if s.Connection.Name != "" {
		t.Errorf("Connection.Name = %q; want empty", s.Connection.Name)
	}
	if s.Wireless.Channel != 0 {
		t.Errorf("Wireless.Channel = %d; want 0", s.Wireless.Channel)
	}
	if s.IPv4.Method != "" {
		t.Errorf("IPv4.Method = %q; want empty", s.IPv4.Method)
	}
}

func TestEncodeDecodeSettings_RoundTrip(t *testing.T) {
	want := wireless.ConnectionSettings{}
	want.Connection.Name = "home-wifi"
	want.Connection.Type = "802-11-wireless"
	want.Connection.UUID = "11111111-1111-1111-1111-111111111111"
	want.Connection.Autoconnect = true
	want.Wireless.SSID = []byte("myssid")
	want.Wireless.Band = wireless.Band5GHz
	want.WirelessSecurity.PSK = "hunter2"
	want.IPv4.Method = wireless.IPMethodAuto

	raw := wireless.EncodeSettings(want)
	got := wireless.DecodeSettings(raw)

	if got.Connection.Name != want.Connection.Name {
		t.Errorf("Connection.Name = %q; want %q", got.Connection.Name, want.Connection.Name)
	}
	if got.Connection.Autoconnect != want.Connection.Autoconnect {
		t.Errorf("Connection.Autoconnect = %v; want %v", got.Connection.Autoconnect, want.Connection.Autoconnect)
	}
	if !bytes.Equal(got.Wireless.SSID, want.Wireless.SSID) {
		t.Errorf("Wireless.SSID = %q; want %q", got.Wireless.SSID, want.Wireless.SSID)
	}
	if got.Wireless.Band != want.Wireless.Band {
		t.Errorf("Wireless.Band = %q; want %q", got.Wireless.Band, want.Wireless.Band)
	}
	if got.WirelessSecurity.PSK != want.WirelessSecurity.PSK {
		t.Errorf("WirelessSecurity.PSK = %q; want %q", got.WirelessSecurity.PSK, want.WirelessSecurity.PSK)
	}
	if got.IPv4.Method != want.IPv4.Method {
		t.Errorf("IPv4.Method = %q; want %q", got.IPv4.Method, want.IPv4.Method)
	}
}

func TestNewAccessPointSecuritySettings(t *testing.T) {
	raw := wireless.NewAccessPointSecuritySettings([]byte("myssid"), "hunter2")

	conn, ok := raw["connection"]
	if !ok {
		t.Fatal("missing connection section")
	}
	if id, _ := conn["id"].Value().(string); id != "myssid" {
		t.Errorf("connection.id = %q; want %q", id, "myssid")
	}
	uuidVal, _ := conn["uuid"].Value().(string)
	if uuidVal == "" {
		t.Error("connection.uuid is empty; want a generated UUID")
	}

	sec, ok := raw["802-11-wireless-security"]
	if !ok {
		t.Fatal("missing 802-11-wireless-security section")
	}
	if psk, _ := sec["psk"].Value().(string); psk != "hunter2" {
		t.Errorf("802-11-wireless-security.psk = %q; want %q", psk, "hunter2")
	}
}

func TestAccessPoint_SSIDString(t *testing.T) {
	ap := wireless.AccessPoint{SSID: []byte("hello")}
	if got := ap.SSIDString(); got != "hello" {
		t.Errorf("SSIDString() = %q; want %q", got, "hello")
	}
}
