package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunExitCodes(t *testing.T) {
	assert.Equal(t, 0, run(func() error { return nil }))
	assert.Equal(t, 1, run(func() error { return errors.New("boom") }))
}
