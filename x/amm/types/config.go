package types

import (
	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	"github.com/spf13/cast"
)

// Node-local option keys read from app.toml.
const (
	FlagMetricsEnabled = "amm.metrics-enabled"
	FlagTracingEnabled = "amm.tracing-enabled"
	FlagInvariantCheck = "amm.invariant-check"
)

// Config holds node-local AMM settings. Unlike Params they do not affect
// consensus and may differ between nodes.
type Config struct {
	// MetricsEnabled records Prometheus and telemetry metrics per operation.
	MetricsEnabled bool
	// TracingEnabled opens an OpenTelemetry span per operation.
	TracingEnabled bool
	// InvariantCheck verifies the invariants of the pool an operation changed
	// before committing it. Meant for testnets and debugging.
	InvariantCheck bool
}

// DefaultConfig returns the settings used when app.toml has no amm section.
func DefaultConfig() Config {
	return Config{
		MetricsEnabled: true,
		TracingEnabled: true,
		InvariantCheck: false,
	}
}

// ConfigFromAppOptions overlays any amm.* options present in appOpts on the
// defaults.
func ConfigFromAppOptions(appOpts servertypes.AppOptions) (Config, error) {
	cfg := DefaultConfig()
	if appOpts == nil {
		return cfg, nil
	}

	for _, opt := range []struct {
		key string
		dst *bool
	}{
		{FlagMetricsEnabled, &cfg.MetricsEnabled},
		{FlagTracingEnabled, &cfg.TracingEnabled},
		{FlagInvariantCheck, &cfg.InvariantCheck},
	} {
		raw := appOpts.Get(opt.key)
		if raw == nil {
			continue
		}
		v, err := cast.ToBoolE(raw)
		if err != nil {
			return Config{}, ErrInvalidConfig.Wrapf("%s: %v", opt.key, err)
		}
		*opt.dst = v
	}
	return cfg, nil
}
