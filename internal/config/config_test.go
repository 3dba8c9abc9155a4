// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuilder_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			App:    App{TokenSignKey: "from-env"},
			Server: Server{HTTPAddress: "env-host:9090"},
		},
		&StructuredConfig{
			App:    App{TokenSignKey: "from-flags", TokenIssuer: "flag-issuer"},
			Server: Server{HTTPAddress: "flag-host:7070", RequestTimeout: 15 * time.Second},
		},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.App.TokenSignKey, "the earlier source keeps its value")
	assert.Equal(t, "env-host:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, "flag-issuer", cfg.App.TokenIssuer, "later sources fill what earlier ones left empty")
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultSweepInterval, cfg.Workers.SweepInterval, "defaults fill the rest")
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
}

func TestConfigBuilder_DefaultsAlone(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{App: App{TokenSignKey: "secret"}})
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultTokenIssuer, cfg.App.TokenIssuer)
}

func TestConfigBuilder_ValidationFailures(t *testing.T) {
	t.Run("missing sign key", func(t *testing.T) {
		b := newConfigBuilder()
		b.withDefaults()

		_, err := b.build()
		assert.ErrorIs(t, err, ErrInvalidAppConfigs)
	})

	t.Run("missing server address", func(t *testing.T) {
		cfg := &StructuredConfig{
			App:     App{TokenSignKey: "secret"},
			Server:  Server{RequestTimeout: time.Second},
			Workers: Workers{SweepInterval: time.Minute},
		}
		assert.ErrorIs(t, cfg.validate(), ErrInvalidServerConfigs)
	})

	t.Run("non-positive sweep interval", func(t *testing.T) {
		cfg := &StructuredConfig{
			App:    App{TokenSignKey: "secret"},
			Server: Server{HTTPAddress: "localhost:8080", RequestTimeout: time.Second},
		}
		assert.ErrorIs(t, cfg.validate(), ErrInvalidWorkerConfigs)
	})
}

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"app": {
			"token_sign_key": "json-secret",
			"token_duration": "12h"
		},
		"server": {
			"http_address": "0.0.0.0:3000",
			"request_timeout": "45s"
		},
		"workers": {
			"sweep_interval": "2m"
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "json-secret", cfg.App.TokenSignKey)
	assert.Equal(t, 12*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Workers.SweepInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration

	require.NoError(t, json.Unmarshal([]byte(`"90s"`), &d))
	assert.Equal(t, Duration(90*time.Second), d)

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, Duration(time.Second), d)

	assert.Error(t, json.Unmarshal([]byte(`"not a duration"`), &d))
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		host    string
		port    int
	}{
		{"localhost", "localhost:8080", false, "localhost", 8080},
		{"ip address", "127.0.0.1:9090", false, "127.0.0.1", 9090},
		{"missing port", "localhost", true, "", 0},
		{"port not a number", "localhost:http", true, "", 0},
		{"port below one", "localhost:0", true, "", 0},
		{"bogus host", "not-an-ip:8080", true, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.host, a.Host)
			assert.Equal(t, tt.port, a.Port)
			assert.Equal(t, tt.input, a.String())
		})
	}
}

func TestNetAddress_StringEmpty(t *testing.T) {
	var a NetAddress
	assert.Equal(t, "", a.String())
}
