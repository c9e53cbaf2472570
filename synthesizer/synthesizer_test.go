package synthesizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	raw := "```json\n{\"title\":\"Bail Reform\"}\n```"
	cleaned := stripCodeFence(raw)

	var cs CaseStudy
	require.NoError(t, json.Unmarshal([]byte(cleaned), &cs))
	assert.Equal(t, "Bail Reform", cs.Title)
}

func TestStripCodeFencePlainJSON(t *testing.T) {
	raw := `{"title":"x","summary":"y"}`
	assert.Equal(t, raw, stripCodeFence(raw))
}
