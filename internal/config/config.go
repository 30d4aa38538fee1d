// Package config loads daemon configuration from command-line flags and
// environment variables. Configuration file discovery is not implemented;
// only the flag/env half of the chain is kept.
package config

import (
	"github.com/knadh/koanf/providers/cliflagv2"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v2"
)

// Values describes every configuration value the daemon accepts.
type Values struct {
	Namespace string `koanf:"namespace"`
	LogLevel  string `koanf:"log-level"`
	Embedded  bool   `koanf:"embedded"`

	CallTimeoutMS int `koanf:"call-timeout-ms"`
	PairTimeoutMS int `koanf:"pair-timeout-ms"`

	RescanIntervalSeconds     int `koanf:"rescan-interval-seconds"`
	BluetoothScanDurationMS   int `koanf:"bluetooth-scan-duration-ms"`
	ListenerPollIntervalMS    int `koanf:"listener-poll-interval-ms"`
}

// Config holds the decoded Values; the koanf instance used by Load is not
// kept.
type Config struct {
	Values Values
}

// New returns a Config populated with the daemon's defaults.
func New() *Config {
	return &Config{
		Values: Values{
			Namespace:               "org.Xetibo.ReSet",
			LogLevel:                "info",
			CallTimeoutMS:           1000,
			PairTimeoutMS:           10000,
			RescanIntervalSeconds:   10,
			BluetoothScanDurationMS: 10000,
			ListenerPollIntervalMS:  1000,
		},
	}
}

// Load overlays command-line flags (and the environment variables attached
// to them) onto the defaults.
func (c *Config) Load(cliCtx *cli.Context) error {
	k := koanf.New(".")

	if err := k.Load(cliflagv2.Provider(cliCtx, "."), nil); err != nil {
		return err
	}

	return k.UnmarshalWithConf("", &c.Values, koanf.UnmarshalConf{Tag: "koanf"})
}
