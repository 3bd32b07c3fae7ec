package gemini

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain", `{"severity":"major","confidence":0.8}`},
		{"json fence", "```json\n{\"severity\":\"major\",\"confidence\":0.8}\n```"},
		{"bare fence", "```\n{\"severity\":\"major\",\"confidence\":0.8}\n```"},
		{"padded", "  \n{\"severity\":\"major\",\"confidence\":0.8}\n  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJSONResponse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, "major", got["severity"])
			assert.Equal(t, 0.8, got["confidence"])
		})
	}

	_, err := ParseJSONResponse("I think it is major")
	assert.ErrorContains(t, err, "failed to unmarshal AI response")
}

func TestDetectImageMIMEType(t *testing.T) {
	assert.Equal(t, "image/png", DetectImageMIMEType([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}))
	assert.Equal(t, "image/jpeg", DetectImageMIMEType([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}))
	assert.Equal(t, "image/heic", DetectImageMIMEType([]byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'h', 'e', 'i', 'c'}))
	assert.Equal(t, "image/jpeg", DetectImageMIMEType([]byte{1, 2}))
}

func TestSelector_RoundRobinAndFailover(t *testing.T) {
	s := NewGeminiClientSelector(make([]GeminiClient, 3))

	var tried []int
	err := s.TryAllClients(func(_ *GeminiClient, idx int) error {
		tried = append(tried, idx)
		if idx < 2 {
			return fmt.Errorf("quota exceeded on %d", idx)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, tried)

	// next call starts after the last client used
	_, idx := s.GetNextClient()
	assert.Equal(t, 0, idx)
}

func TestSelector_AllFail(t *testing.T) {
	s := NewGeminiClientSelector(make([]GeminiClient, 2))
	boom := errors.New("boom")

	err := s.TryAllClients(func(*GeminiClient, int) error { return boom })
	assert.ErrorIs(t, err, boom)

	empty := NewGeminiClientSelector(nil)
	assert.Error(t, empty.TryAllClients(func(*GeminiClient, int) error { return nil }))
	assert.False(t, NewGenerator(empty).Available())
}
