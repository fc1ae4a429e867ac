package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 1.0, cfg.InvitationCost)
	assert.Equal(t, 10.0, cfg.ConversionReward)
	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, ":7070", cfg.Addr())
	assert.Equal(t, time.Duration(0), cfg.ProposalTTL)
	assert.Equal(t, time.Hour, cfg.ExpirySweepInterval)
	assert.False(t, cfg.Production())
	assert.Empty(t, cfg.WSGatewayEndpoint)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"INVITATION_COST":   "2.5",
		"CONVERSION_REWARD": "25",
		"STORE_BACKEND":     "s3",
		"S3_BUCKET_NAME":    "eventmarket-data",
		"PROPOSAL_TTL":      "720h",
		"GO_ENV":            "production",
	})
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.InvitationCost)
	assert.Equal(t, 25.0, cfg.ConversionReward)
	assert.Equal(t, "eventmarket-data", cfg.S3Bucket)
	assert.Equal(t, 30*24*time.Hour, cfg.ProposalTTL)
	assert.True(t, cfg.Production())
}

func TestLoadBootstrap(t *testing.T) {
	boot, err := LoadBootstrapFrom(map[string]string{})
	require.NoError(t, err)
	assert.False(t, boot.Production())
	assert.Equal(t, "/eventmarket/prod/", boot.SSMParamPrefix)

	boot, err = LoadBootstrapFrom(map[string]string{
		"GO_ENV":           "production",
		"SSM_PARAM_PREFIX": "/eventmarket/staging/",
		"STORE_BACKEND":    "mongo",
	})
	require.NoError(t, err)
	assert.True(t, boot.Production())
	assert.Equal(t, "/eventmarket/staging/", boot.SSMParamPrefix)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend":   {"STORE_BACKEND": "mongo"},
		"s3 without bucket": {"STORE_BACKEND": "s3"},
		"negative cost":     {"INVITATION_COST": "-1"},
		"auth without pool": {"AUTH_ENABLED": "true"},
		"malformed number":  {"CONVERSION_REWARD": "ten"},
	}

	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(vars)
			assert.Error(t, err)
		})
	}
}
