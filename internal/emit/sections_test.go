package emit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSections(t *testing.T) {
	content := "a\n// EXISTING_CODE\nkeep1\n// EXISTING_CODE\nb\n\t// EXISTING_CODE\n\t// EXISTING_CODE\n// EXISTING_CODE\ndangling\n"

	sections := ExtractSections(content)
	assert.Equal(t, []string{
		"// EXISTING_CODE\nkeep1\n// EXISTING_CODE\n",
		"\t// EXISTING_CODE\n\t// EXISTING_CODE\n",
	}, sections)
}

func TestApplySections(t *testing.T) {
	content := "x\n// EXISTING_CODE\n// EXISTING_CODE\ny\n// EXISTING_CODE\ndefault\n// EXISTING_CODE\n"
	sections := []string{
		"// EXISTING_CODE\none\n// EXISTING_CODE\n",
		"// EXISTING_CODE\ntwo\n// EXISTING_CODE\n",
	}

	got, err := ApplySections(content, sections)
	require.NoError(t, err)
	assert.Equal(t, "x\n// EXISTING_CODE\none\n// EXISTING_CODE\ny\n// EXISTING_CODE\ntwo\n// EXISTING_CODE\n", got)
}

func TestApplySections_MissingSection(t *testing.T) {
	content := "// EXISTING_CODE\n// EXISTING_CODE\n// EXISTING_CODE\n// EXISTING_CODE\n"
	_, err := ApplySections(content, []string{"// EXISTING_CODE\n// EXISTING_CODE\n"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSection))
}

func TestApplySections_NoMarkers(t *testing.T) {
	got, err := ApplySections("package sdk", nil)
	require.NoError(t, err)
	assert.Equal(t, "package sdk", got)
}

func TestApplySections_KeepsMissingFinalNewline(t *testing.T) {
	content := "// EXISTING_CODE\n// EXISTING_CODE"
	got, err := ApplySections(content, ExtractSections(content))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}
