package types

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestConfigFromAppOptions(t *testing.T) {
	cfg, err := ConfigFromAppOptions(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	v := viper.New()
	v.Set(FlagMetricsEnabled, "false")
	v.Set(FlagInvariantCheck, true)
	cfg, err = ConfigFromAppOptions(v)
	require.NoError(t, err)
	require.False(t, cfg.MetricsEnabled)
	require.True(t, cfg.TracingEnabled)
	require.True(t, cfg.InvariantCheck)

	v = viper.New()
	v.Set(FlagTracingEnabled, "sometimes")
	_, err = ConfigFromAppOptions(v)
	require.ErrorIs(t, err, ErrInvalidConfig)
}
