package common

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsAndOverrides(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir())) // no .env here
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("ECUAPASS_DISTRICT", "ipiales")
	t.Setenv("ECUAPASS_WORKERS", "8")
	t.Setenv("ECUAPASS_DOC_TIMEOUT", "30s")
	t.Setenv("DB_MAX_CONNS", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "IPIALES", cfg.Engine.District)
	assert.Equal(t, "N.T.A.", cfg.Engine.Carrier)
	assert.Equal(t, "USD", cfg.Engine.Currency)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, 30*time.Second, cfg.Batch.DocTimeout)
	assert.EqualValues(t, 10, cfg.Database.MaxConns)
	assert.Equal(t, ":50051", cfg.Server.GRPCAddr)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{
		Engine: EngineConfig{District: "TULCAN", Carrier: " ", Currency: "dollars"},
		Batch:  BatchConfig{Workers: -1, DocTimeout: time.Minute},
	}
	err := cfg.Validate()
	require.Error(t, err)

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, CodeConfig, appErr.Code)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	for _, name := range []string{"ECUAPASS_CARRIER", "ECUAPASS_CURRENCY", "ECUAPASS_WORKERS", "SQLITE_PATH"} {
		assert.Contains(t, err.Error(), name)
	}
}

func TestValidatorRules(t *testing.T) {
	v := NewValidator().
		Field("id", "not-a-uuid", UUID).
		Field("id2", "3f2b1c9e-8d4a-4b7e-9f3c-2a1d5e6f7a8b", UUID).
		Field("n", int32(0), Positive).
		Field("d", 2*time.Second, Positive).
		Field("s", nil, Required).
		Field("cur", "USD", CurrencyCode)

	require.True(t, v.HasErrors())
	fields := make([]string, 0, len(v.Errors()))
	for _, e := range v.Errors() {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"id", "n", "s"}, fields)
	assert.NoError(t, NewValidator().Err(CodeConfig))
}

func TestInputContractError(t *testing.T) {
	cause := errors.New("missing pages")
	err := NewInputContractError("invalid analysis result", cause)

	assert.True(t, errors.Is(err, ErrInputContract))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, CodeInputContract, err.Code)

	bare := NewInputContractError("no fields", nil)
	assert.True(t, errors.Is(bare, ErrInputContract))

	assert.Nil(t, WrapError(nil, "x"))
	assert.EqualError(t, WrapError(cause, "decode"), "decode: missing pages")
}

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, DocumentIDFromContext(ctx))
	assert.Empty(t, BatchIDFromContext(ctx))

	ctx = WithBatchID(WithDocumentID(ctx, "doc-1"), "batch-1")
	assert.Equal(t, "doc-1", DocumentIDFromContext(ctx))
	assert.Equal(t, "batch-1", BatchIDFromContext(ctx))
}
