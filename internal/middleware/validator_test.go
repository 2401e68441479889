package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateFilename(t *testing.T) {
	require.NoError(t, ValidateFilename("vacation photo.jpg"))
	require.NoError(t, ValidateFilename("IMG_2031.HEIC.png"))

	require.Error(t, ValidateFilename(""))
	require.Error(t, ValidateFilename("../etc/passwd"))
	require.Error(t, ValidateFilename("a/b.jpg"))
	require.Error(t, ValidateFilename("a\\b.jpg"))
	require.Error(t, ValidateFilename("bad\x00name.jpg"))
	require.Error(t, ValidateFilename(strings.Repeat("a", 256)))
}

func TestValidateSubmissionID(t *testing.T) {
	require.NoError(t, ValidateSubmissionID("3f1d9a2c-8b4e-4f6a-9c1d-2e3f4a5b6c7d"))

	require.Error(t, ValidateSubmissionID(""))
	require.Error(t, ValidateSubmissionID("not-a-uuid"))
	require.Error(t, ValidateSubmissionID("3f1d9a2c-8b4e-4f6a-9c1d"))
}

func TestValidateLimit(t *testing.T) {
	require.Equal(t, 20, ValidateLimit(0))
	require.Equal(t, 20, ValidateLimit(-5))
	require.Equal(t, 7, ValidateLimit(7))
	require.Equal(t, 100, ValidateLimit(500))
}

func TestSanitizeString(t *testing.T) {
	require.Equal(t, "hello", SanitizeString("  hello\x00 "))
	require.Equal(t, "a\tb", SanitizeString("a\tb\x07"))
}
