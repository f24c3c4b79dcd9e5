package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPorts_Validate(t *testing.T) {
	ports := newTestPorts()

	require.NoError(t, ports.Validate())
}

func TestPorts_Validate_MissingDocumentManager(t *testing.T) {
	ports := newTestPorts()
	ports.Document = nil

	assert.ErrorIs(t, ports.Validate(), ErrMissingDocumentManager)
}

func TestPorts_Validate_MissingContentResolver(t *testing.T) {
	ports := newTestPorts()
	ports.Content = nil

	assert.ErrorIs(t, ports.Validate(), ErrMissingContentResolver)
}
