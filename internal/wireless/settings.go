package wireless

import (
	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"
)

// RawSettings is the nested property-map NetworkManager's Settings.Connection
// API exchanges verbatim: section name -> option name -> dynamically typed
// value. DecodeSettings and EncodeSettings convert between this and typed
// ConnectionSettings; GetConnectionSettings and SetConnectionSettings do not
// use them and pass the raw map through unchanged.
type RawSettings map[string]map[string]dbus.Variant

// TrustZone is the "connection.zone" option.
type TrustZone string

const (
	TrustZoneDefault TrustZone = "Default"
	TrustZoneHome    TrustZone = "Home"
	TrustZoneWork    TrustZone = "Work"
	TrustZonePublic  TrustZone = "Public"
)

// Band is the "802-11-wireless.band" option.
type Band string

const (
	BandNone  Band = "None"
	Band5GHz  Band = "a"
	Band24GHz Band = "bg"
)

// WifiMode is the "802-11-wireless.mode" option.
type WifiMode string

const (
	WifiModeInfrastructure WifiMode = "infrastructure"
	WifiModeAdHoc          WifiMode = "adhoc"
	WifiModeAP             WifiMode = "ap"
)

// Duplex is the "802-3-ethernet.duplex" option.
type Duplex string

const (
	DuplexHalf Duplex = "half"
	DuplexFull Duplex = "full"
)

// IPMethod is the "ipv4.method"/"ipv6.method" option.
type IPMethod string

const (
	IPMethodAuto      IPMethod = "auto"
	IPMethodManual    IPMethod = "manual"
	IPMethodLinkLocal IPMethod = "link-local"
	IPMethodShared    IPMethod = "shared"
	IPMethodDisabled  IPMethod = "disabled"
)

// AddressData is one entry of "ipv4.address-data"/"ipv4.route-data" (and
// their ipv6 equivalents).
type AddressData struct {
	Address string
	Prefix  uint32
}

// ConnectionSettings is the typed decoding of a NetworkManager connection
// profile's recognised sections. Sections absent from the raw map decode to
// their zero value; this is never an error.
type ConnectionSettings struct {
	Connection struct {
		Autoconnect         bool
		AutoconnectPriority int32
		Metered             int32
		Name                string
		Type                string
		UUID                string
		Zone                TrustZone
	}
	Wireless struct {
		Band      Band
		Channel   uint32
		Mode      WifiMode
		MTU       uint32
		Powersave uint32
		Rate      uint32
		SSID      []byte
	}
	WirelessSecurity struct {
		PSK string
	}
	Ethernet struct {
		AutoNegotiate bool
		Duplex        Duplex
		MTU           uint32
		Name          string
		Speed         uint32
	}
	IPv4 ipSettings
	IPv6 struct {
		ipSettings
		IP6Privacy uint32
	}
	VPN struct {
		Data        map[string]string
		Name        string
		Persistent  bool
		Secrets     map[string]string
		ServiceType string
		Timeout     uint32
		UserName    string
	}
}

type ipSettings struct {
	AddressData     []AddressData
	DNS             [][]byte
	DNSOptions      []string
	DNSPriority     int32
	DNSSearch       []string
	Gateway         string
	IgnoreAutoDNS   bool
	IgnoreAutoRoutes bool
	MayFail         bool
	Method          IPMethod
	NeverDefault    bool
	RouteData       []AddressData
}

const (
	sectionConnection       = "connection"
	sectionWireless         = "802-11-wireless"
	sectionWirelessSecurity = "802-11-wireless-security"
	sectionEthernet         = "802-3-ethernet"
	sectionIPv4             = "ipv4"
	sectionIPv6             = "ipv6"
	sectionVPN              = "vpn"
)

func variantString(m map[string]dbus.Variant, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

func variantBool(m map[string]dbus.Variant, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.Value().(bool); ok {
			return b
		}
	}
	return false
}

func variantUint32(m map[string]dbus.Variant, key string) uint32 {
	if v, ok := m[key]; ok {
		if u, ok := v.Value().(uint32); ok {
			return u
		}
	}
	return 0
}

func variantInt32(m map[string]dbus.Variant, key string) int32 {
	if v, ok := m[key]; ok {
		if n, ok := v.Value().(int32); ok {
			return n
		}
	}
	return 0
}

func variantBytes(m map[string]dbus.Variant, key string) []byte {
	if v, ok := m[key]; ok {
		if b, ok := v.Value().([]byte); ok {
			return b
		}
	}
	return []byte{}
}

func variantStringSlice(m map[string]dbus.Variant, key string) []string {
	if v, ok := m[key]; ok {
		if s, ok := v.Value().([]string); ok {
			return s
		}
	}
	return nil
}

func variantBytesSlice(m map[string]dbus.Variant, key string) [][]byte {
	if v, ok := m[key]; ok {
		if s, ok := v.Value().([][]byte); ok {
			return s
		}
	}
	return nil
}

func variantStringMap(m map[string]dbus.Variant, key string) map[string]string {
	if v, ok := m[key]; ok {
		if s, ok := v.Value().(map[string]string); ok {
			return s
		}
	}
	return nil
}

func variantAddressData(m map[string]dbus.Variant, key string) []AddressData {
	v, ok := m[key]
	if !ok {
		return nil
	}
	raw, ok := v.Value().([]map[string]dbus.Variant)
	if !ok {
		return nil
	}

	out := make([]AddressData, 0, len(raw))
	for _, entry := range raw {
		addr, _ := entry["address"].Value().(string)
		prefix, _ := entry["prefix"].Value().(uint32)
		out = append(out, AddressData{Address: addr, Prefix: prefix})
	}
	return out
}

func decodeIPSettings(m map[string]dbus.Variant) ipSettings {
	return ipSettings{
		AddressData:      variantAddressData(m, "address-data"),
		DNS:              variantBytesSlice(m, "dns"),
		DNSOptions:       variantStringSlice(m, "dns-options"),
		DNSPriority:      variantInt32(m, "dns-priority"),
		DNSSearch:        variantStringSlice(m, "dns-search"),
		Gateway:          variantString(m, "gateway"),
		IgnoreAutoDNS:    variantBool(m, "ignore-auto-dns"),
		IgnoreAutoRoutes: variantBool(m, "ignore-auto-routes"),
		MayFail:          variantBool(m, "may-fail"),
		Method:           IPMethod(variantString(m, "method")),
		NeverDefault:     variantBool(m, "never-default"),
		RouteData:        variantAddressData(m, "route-data"),
	}
}

// DecodeSettings converts a RawSettings map into typed ConnectionSettings.
// Every section, and every option within it, is optional: missing data
// decodes to its zero value rather than erroring.
func DecodeSettings(raw RawSettings) ConnectionSettings {
	var s ConnectionSettings

	if m, ok := raw[sectionConnection]; ok {
		s.Connection.Autoconnect = variantBool(m, "autoconnect")
		s.Connection.AutoconnectPriority = variantInt32(m, "autoconnect-priority")
		s.Connection.Metered = variantInt32(m, "metered")
		s.Connection.Name = variantString(m, "name")
		s.Connection.Type = variantString(m, "type")
		s.Connection.UUID = variantString(m, "uuid")
		s.Connection.Zone = TrustZone(variantString(m, "zone"))
	}

	if m, ok := raw[sectionWireless]; ok {
		s.Wireless.Band = Band(variantString(m, "band"))
		s.Wireless.Channel = variantUint32(m, "channel")
		s.Wireless.Mode = WifiMode(variantString(m, "mode"))
		s.Wireless.MTU = variantUint32(m, "mtu")
		s.Wireless.Powersave = variantUint32(m, "powersave")
		s.Wireless.Rate = variantUint32(m, "rate")
		s.Wireless.SSID = variantBytes(m, "ssid")
	}

	if m, ok := raw[sectionWirelessSecurity]; ok {
		s.WirelessSecurity.PSK = variantString(m, "psk")
	}

	if m, ok := raw[sectionEthernet]; ok {
		s.Ethernet.AutoNegotiate = variantBool(m, "auto-negotiate")
		s.Ethernet.Duplex = Duplex(variantString(m, "duplex"))
		s.Ethernet.MTU = variantUint32(m, "mtu")
		s.Ethernet.Name = variantString(m, "name")
		s.Ethernet.Speed = variantUint32(m, "speed")
	}

	if m, ok := raw[sectionIPv4]; ok {
		s.IPv4 = decodeIPSettings(m)
	}

	if m, ok := raw[sectionIPv6]; ok {
		s.IPv6.ipSettings = decodeIPSettings(m)
		s.IPv6.IP6Privacy = variantUint32(m, "ip6-privacy")
	}

	if m, ok := raw[sectionVPN]; ok {
		s.VPN.Data = variantStringMap(m, "data")
		s.VPN.Name = variantString(m, "name")
		s.VPN.Persistent = variantBool(m, "persistent")
		s.VPN.Secrets = variantStringMap(m, "secrets")
		s.VPN.ServiceType = variantString(m, "service-type")
		s.VPN.Timeout = variantUint32(m, "timeout")
		s.VPN.UserName = variantString(m, "user-name")
	}

	return s
}

func encodeIPSettings(s ipSettings) map[string]dbus.Variant {
	addrData := make([]map[string]dbus.Variant, 0, len(s.AddressData))
	for _, a := range s.AddressData {
		addrData = append(addrData, map[string]dbus.Variant{
			"address": dbus.MakeVariant(a.Address),
			"prefix":  dbus.MakeVariant(a.Prefix),
		})
	}
	routeData := make([]map[string]dbus.Variant, 0, len(s.RouteData))
	for _, a := range s.RouteData {
		routeData = append(routeData, map[string]dbus.Variant{
			"address": dbus.MakeVariant(a.Address),
			"prefix":  dbus.MakeVariant(a.Prefix),
		})
	}

	return map[string]dbus.Variant{
		"address-data":       dbus.MakeVariant(addrData),
		"dns":                dbus.MakeVariant(s.DNS),
		"dns-options":        dbus.MakeVariant(s.DNSOptions),
		"dns-priority":       dbus.MakeVariant(s.DNSPriority),
		"dns-search":         dbus.MakeVariant(s.DNSSearch),
		"gateway":            dbus.MakeVariant(s.Gateway),
		"ignore-auto-dns":    dbus.MakeVariant(s.IgnoreAutoDNS),
		"ignore-auto-routes": dbus.MakeVariant(s.IgnoreAutoRoutes),
		"may-fail":           dbus.MakeVariant(s.MayFail),
		"method":             dbus.MakeVariant(string(s.Method)),
		"never-default":      dbus.MakeVariant(s.NeverDefault),
		"route-data":         dbus.MakeVariant(routeData),
	}
}

// EncodeSettings converts typed ConnectionSettings back into a RawSettings
// map suitable for NetworkManager's Update/AddConnection calls.
func EncodeSettings(s ConnectionSettings) RawSettings {
	raw := RawSettings{
		sectionConnection: {
			"autoconnect":          dbus.MakeVariant(s.Connection.Autoconnect),
			"autoconnect-priority": dbus.MakeVariant(s.Connection.AutoconnectPriority),
			"metered":              dbus.MakeVariant(s.Connection.Metered),
			"name":                 dbus.MakeVariant(s.Connection.Name),
			"type":                 dbus.MakeVariant(s.Connection.Type),
			"uuid":                 dbus.MakeVariant(s.Connection.UUID),
			"zone":                 dbus.MakeVariant(string(s.Connection.Zone)),
		},
		sectionWireless: {
			"band":      dbus.MakeVariant(string(s.Wireless.Band)),
			"channel":   dbus.MakeVariant(s.Wireless.Channel),
			"mode":      dbus.MakeVariant(string(s.Wireless.Mode)),
			"mtu":       dbus.MakeVariant(s.Wireless.MTU),
			"powersave": dbus.MakeVariant(s.Wireless.Powersave),
			"rate":      dbus.MakeVariant(s.Wireless.Rate),
			"ssid":      dbus.MakeVariant(s.Wireless.SSID),
		},
		sectionWirelessSecurity: {
			"psk": dbus.MakeVariant(s.WirelessSecurity.PSK),
		},
		sectionEthernet: {
			"auto-negotiate": dbus.MakeVariant(s.Ethernet.AutoNegotiate),
			"duplex":         dbus.MakeVariant(string(s.Ethernet.Duplex)),
			"mtu":            dbus.MakeVariant(s.Ethernet.MTU),
			"name":           dbus.MakeVariant(s.Ethernet.Name),
			"speed":          dbus.MakeVariant(s.Ethernet.Speed),
		},
		sectionIPv4: encodeIPSettings(s.IPv4),
		sectionVPN: {
			"data":         dbus.MakeVariant(s.VPN.Data),
			"name":         dbus.MakeVariant(s.VPN.Name),
			"persistent":   dbus.MakeVariant(s.VPN.Persistent),
			"secrets":      dbus.MakeVariant(s.VPN.Secrets),
			"service-type": dbus.MakeVariant(s.VPN.ServiceType),
			"timeout":      dbus.MakeVariant(s.VPN.Timeout),
			"user-name":    dbus.MakeVariant(s.VPN.UserName),
		},
	}

	ipv6 := encodeIPSettings(s.IPv6.ipSettings)
	ipv6["ip6-privacy"] = dbus.MakeVariant(s.IPv6.IP6Privacy)
	raw[sectionIPv6] = ipv6

	return raw
}

// NewAccessPointSecuritySettings builds the settings payload used by
// ConnectToNewAccessPoint: a connection section carrying a freshly
// generated UUID, an 802-11-wireless section carrying the SSID, and an
// 802-11-wireless-security section carrying the PSK.
func NewAccessPointSecuritySettings(ssid []byte, password string) RawSettings {
	id, err := uuid.NewUUID()
	connUUID := id.String()
	if err != nil {
		connUUID = ""
	}

	return RawSettings{
		sectionConnection: {
			"id":   dbus.MakeVariant(string(ssid)),
			"uuid": dbus.MakeVariant(connUUID),
			"type": dbus.MakeVariant("802-11-wireless"),
		},
		sectionWireless: {
			"ssid": dbus.MakeVariant(ssid),
		},
		sectionWirelessSecurity: {
			"key-mgmt": dbus.MakeVariant("wpa-psk"),
			"psk":      dbus.MakeVariant(password),
		},
	}
}
