package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModel_FallsBackToStandard(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierFast))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(ModelTier("unknown")))
}

func TestWithModel_DoesNotMutateReceiver(t *testing.T) {
	base := DefaultConfig()

	custom := base.WithModel(TierFast, "gemini-exp")

	assert.Equal(t, "gemini-exp", custom.GetModel(TierFast))
	assert.Equal(t, "gemini-2.5-flash-lite", base.GetModel(TierFast))
}
