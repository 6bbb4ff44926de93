package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/dissector/internal/config"
	"firestige.xyz/dissector/internal/core"
)

func TestNewFileSource(t *testing.T) {
	s, err := New(config.CaptureConfig{
		Source: config.SourceFile,
		File:   config.FileConfig{Path: "/tmp/trace.pcap"},
	})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestNewFileSourceWithoutPath(t *testing.T) {
	s, err := New(config.CaptureConfig{Source: config.SourceFile})
	assert.ErrorIs(t, err, core.ErrConfigInvalid)
	assert.Nil(t, s)
}

func TestNewUnknownSource(t *testing.T) {
	_, err := New(config.CaptureConfig{Source: "carrier-pigeon"})
	assert.ErrorIs(t, err, core.ErrUnknownSource)
}
