package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFoundResult(t *testing.T) {
	result := NewFoundResult("RockAuto", []string{"Toyota", "Honda", "Toyota", " Ford ", ""})

	assert.Equal(t, StatusFound, result.Status)
	assert.Equal(t, "RockAuto", result.Source)
	assert.Equal(t, []string{"Ford", "Honda", "Toyota"}, result.Makes, "makes deduplicated and sorted")
	assert.Equal(t, "Ford, Honda, Toyota", result.MakesString())
}

func TestNewNotFoundResult(t *testing.T) {
	result := NewNotFoundResult()

	assert.Equal(t, StatusNotFound, result.Status)
	assert.Equal(t, SourceNone, result.Source)
	assert.Empty(t, result.Makes)
	assert.Equal(t, MakesNotFound, result.MakesString())
}

func TestResolutionResult_MakesStringNil(t *testing.T) {
	var result *ResolutionResult
	assert.Equal(t, MakesNotFound, result.MakesString())
}
