package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionError(t *testing.T) {
	cause := errors.New("bad token")
	err := &ExtractionError{Field: "amount", Value: "$x", Err: cause}

	assert.Contains(t, err.Error(), "amount")
	assert.Contains(t, err.Error(), "$x")
	assert.ErrorIs(t, err, cause)
}

func TestInvalidPatternError(t *testing.T) {
	cause := errors.New("missing closing ]")
	err := &InvalidPatternError{Pattern: "([", Err: cause}

	assert.Contains(t, err.Error(), "([")
	assert.ErrorIs(t, err, cause)

	var target *InvalidPatternError
	require.ErrorAs(t, error(err), &target)
	assert.Equal(t, "([", target.Pattern)
}

func TestUnknownFieldError(t *testing.T) {
	err := &UnknownFieldError{Field: "colour"}
	assert.Contains(t, err.Error(), "colour")
}

func TestUnknownAlgorithmError(t *testing.T) {
	err := &UnknownAlgorithmError{Kind: "sort", Algorithm: "bogosort"}
	assert.Contains(t, err.Error(), "bogosort")
	assert.Contains(t, err.Error(), "sort")
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{FilePath: "r.csv", Msg: "missing header"}
	assert.Contains(t, err.Error(), "r.csv")
	assert.Contains(t, err.Error(), "missing header")
}
