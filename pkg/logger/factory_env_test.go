package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantguard/pkg/logger"
	"github.com/dmitrymomot/tenantguard/pkg/requestid"
	"github.com/dmitrymomot/tenantguard/pkg/tenant"
)

func TestWithDevelopment(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithDevelopment("tenantguard"),
		logger.WithOutput(buf),
	)
	require.NotNil(t, log)
	log.Debug("msg")
	output := buf.String()
	assert.Contains(t, output, "DEBUG")
	assert.Contains(t, output, "service=tenantguard")
}

func TestWithProduction(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithProduction("tenantguard"),
		logger.WithOutput(buf),
	)
	require.NotNil(t, log)
	log.Info("msg")
	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)
	assert.Equal(t, "tenantguard", entry["service"])
	assert.Equal(t, "production", entry["env"])
}

func TestTenantExtractorIntegration(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(tenant.LoggerExtractor()),
	)

	tc, err := tenant.New(uuid.New())
	require.NoError(t, err)
	ctx := tenant.WithContext(t.Context(), tc)

	log.InfoContext(ctx, "unit of work finished")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, tc.TenantID().String(), entry["tenant_id"])
}

func TestPairedExtractors(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(requestid.LoggerExtractor(), tenant.LoggerExtractor()),
	)

	tc, err := tenant.New(uuid.New())
	require.NoError(t, err)
	ctx := requestid.WithContext(tenant.WithContext(t.Context(), tc), "req-42")

	log.InfoContext(ctx, "unit of work finished")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, tc.TenantID().String(), entry["tenant_id"])
}
