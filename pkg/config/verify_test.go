package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Upstream.APIKey = "key"
	setDefaults(cfg)
	return cfg
}

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "rss feeds map", modify: func(c *Config) {
			c.Upstream.Provider = "rss"
			c.Upstream.Feeds = map[string]string{"home": "https://example.com/home.xml"}
		}},
		{name: "bad provider", modify: func(c *Config) { c.Upstream.Provider = "ap" }, errMsg: "/upstream/provider"},
		{name: "below minimum", modify: func(c *Config) { c.Limits.MaxFilters = 0 }, errMsg: "/limits/max_filters"},
		{name: "zero workers", modify: func(c *Config) { c.Schedule.RefreshWorkers = 0 }, errMsg: "/schedule/refresh_workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestEmbeddedSchema_UnknownField(t *testing.T) {
	schema, err := loadSchema()
	require.NoError(t, err)

	data, err := json.Marshal(validConfig())
	require.NoError(t, err)
	value, err := decodeJSON(data)
	require.NoError(t, err)
	require.NoError(t, schema.Validate(value))

	value.(map[string]any)["server"].(map[string]any)["tls"] = true
	err = schema.Validate(value)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/server")
	assert.Contains(t, err.Error(), "tls")

	delete(value.(map[string]any)["server"].(map[string]any), "tls")
	value.(map[string]any)["llm"] = map[string]any{}
	err = schema.Validate(value)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm")
}

func TestEmbeddedSchemaMatchesConfig(t *testing.T) {
	var embedded map[string]any
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &embedded))

	data, err := json.Marshal(GenerateSchema())
	require.NoError(t, err)
	var generated map[string]any
	require.NoError(t, json.Unmarshal(data, &generated))

	embeddedDefs, _ := embedded["$defs"].(map[string]any)
	generatedDefs, _ := generated["$defs"].(map[string]any)
	require.NotEmpty(t, generatedDefs)
	for name, def := range generatedDefs {
		embeddedDef, ok := embeddedDefs[name].(map[string]any)
		require.True(t, ok, "schema.json misses %s, run go generate", name)
		genProps, _ := def.(map[string]any)["properties"].(map[string]any)
		embProps, _ := embeddedDef["properties"].(map[string]any)
		for prop := range genProps {
			assert.Contains(t, embProps, prop, "schema.json misses %s.%s, run go generate", name, prop)
		}
	}
}
