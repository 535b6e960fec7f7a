package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Contains(t, cfg.DBURL(), "sqlite:///")
	assert.Equal(t, LogFormatPretty, cfg.LogFormat())
	assert.False(t, cfg.Identity().IsConfigured())
	assert.False(t, cfg.Storage().IsRemote())
	assert.Equal(t, DefaultStorageBucket, cfg.Storage().Bucket())
	assert.Equal(t, 60, cfg.StartupSearchLimit())
	assert.Equal(t, 120, cfg.InvestorSearchLimit())
}

func TestAppConfig_ApplyIsImmutable(t *testing.T) {
	base := NewAppConfig()
	next := base.Apply(WithPort(9000), WithCORSAllowedOrigins([]string{"http://x"}))

	assert.Equal(t, DefaultPort, base.Port())
	assert.Empty(t, base.CORSAllowedOrigins())
	assert.Equal(t, 9000, next.Port())

	origins := next.CORSAllowedOrigins()
	origins[0] = "mutated"
	assert.Equal(t, []string{"http://x"}, next.CORSAllowedOrigins())
}

func TestAppConfig_NonPositiveOptionsIgnored(t *testing.T) {
	cfg := NewAppConfig().Apply(WithViewCacheTTL(0), WithStartupSearchLimit(-1))
	assert.Equal(t, DefaultViewCacheTTL, cfg.ViewCacheTTL())
	assert.Equal(t, DefaultStartupSearchLimit, cfg.StartupSearchLimit())

	cfg = cfg.Apply(WithViewCacheTTL(time.Minute))
	assert.Equal(t, time.Minute, cfg.ViewCacheTTL())
}

func TestAppConfig_LogAttrsMasksSecrets(t *testing.T) {
	cfg := NewAppConfig().Apply(
		WithDBURL("postgres://user:hunter2@db:5432/app"),
		WithIdentity(NewIdentityConfig("https://auth", "anon", "topsecret")),
		WithRazorpay(NewRazorpayConfig("id", "rzpsecret")),
	)

	for _, attr := range cfg.LogAttrs() {
		v := attr.Value.String()
		assert.NotContains(t, v, "hunter2")
		assert.NotContains(t, v, "topsecret")
		assert.NotContains(t, v, "rzpsecret")
	}
}

func TestParseList(t *testing.T) {
	assert.Empty(t, ParseList(""))
	assert.Equal(t, []string{"a", "b"}, ParseList(" a, ,b "))
}
