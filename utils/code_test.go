package utils_test

import (
	"testing"

	"github.com/Kariuki/ebookstore-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	code, err := utils.GenerateCode(16)
	require.NoError(t, err)
	assert.Len(t, code, 32, "16 random bytes hex-encode to 32 characters")

	other, err := utils.GenerateCode(16)
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}
