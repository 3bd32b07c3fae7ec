package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaleTemplateKeys(t *testing.T) {
	keys := []string{
		"claim_template:state_farm:fire:2024.1",
		"claim_template:geico:theft:2023.4",
		"claim_template:usaa:water:2024.1",
		"claim_template:allstate:flood:12024.1x",
	}
	assert.Equal(t, []string{
		"claim_template:geico:theft:2023.4",
		"claim_template:allstate:flood:12024.1x",
	}, staleTemplateKeys(keys, "2024.1"))
	assert.Empty(t, staleTemplateKeys(nil, "2024.1"))
}
