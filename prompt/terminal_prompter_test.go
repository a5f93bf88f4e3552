package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reglet-dev/regauth/prompt"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"alice", false},
		{"  alice  ", false},
		{"", true},
		{"   ", true},
		{"ali:ce", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := prompt.ValidateUsername(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.Error(t, prompt.ValidatePassword(""))
	assert.NoError(t, prompt.ValidatePassword(" "))
}

func TestFormatNonInteractiveError(t *testing.T) {
	t.Parallel()

	err := prompt.NewTerminalPrompter().FormatNonInteractiveError("registry.example.com")
	assert.ErrorIs(t, err, prompt.ErrNonInteractive)
	assert.Contains(t, err.Error(), "docker login registry.example.com")
	assert.Contains(t, err.Error(), "REGISTRY_USERNAME")
}
