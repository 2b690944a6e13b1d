package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "ko", DetectLanguage("항암 치료 후 피로감은 어떻게 관리하나요?"))
	assert.Equal(t, "en", DetectLanguage("How do I manage fatigue after chemotherapy?"))
	assert.Equal(t, "en", DetectLanguage("¿Cómo manejo la fatiga?"), "unsupported languages fall back to English")
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("", "gpt-4o")
	assert.Error(t, err)

	client, err := NewClient("sk-test", "gpt-4o")
	assert.NoError(t, err)
	assert.NotNil(t, client)
}
