package entities_test

import (
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/regauth/credential/entities"
)

func TestHelperNotFoundError(t *testing.T) {
	err := fmt.Errorf("build chain: %w", &entities.HelperNotFoundError{Helper: "/opt/bin/docker-credential-x"})

	assert.True(t, errors.Is(err, entities.ErrHelperNotFound))
	assert.False(t, errors.Is(err, entities.ErrCredentialNotFound))
	assert.Contains(t, err.Error(), "specified credential helper was not found: /opt/bin/docker-credential-x")

	var hnf *entities.HelperNotFoundError
	require.True(t, errors.As(err, &hnf))
	assert.Equal(t, "/opt/bin/docker-credential-x", hnf.Helper)
}

func TestHelperNotFoundError_Unwrap(t *testing.T) {
	err := &entities.HelperNotFoundError{Helper: "docker-credential-nope", Cause: exec.ErrNotFound}
	assert.True(t, errors.Is(err, exec.ErrNotFound))
	assert.True(t, errors.Is(err, entities.ErrHelperNotFound))
}

func TestCredentialNotFoundError(t *testing.T) {
	err := &entities.CredentialNotFoundError{Registry: "gcr.io", Tried: 3}
	assert.True(t, errors.Is(err, entities.ErrCredentialNotFound))
	assert.Equal(t, "no credential found for gcr.io after trying 3 retrievers", err.Error())
}
