package errors_test

import (
	stderrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"column missing", errors.ErrCodeTableColumnMissing, "column smiles not found"},
		{"invalid pattern", errors.ErrCodePatternInvalid, "unbalanced bracket"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
			assert.Contains(t, ae.Stack, "errors_test.go")
		})
	}
}

func TestAppError_ErrorFormat(t *testing.T) {
	ae := errors.New(errors.ErrCodeTableMalformed, "ragged row").WithDetail("line=4")
	assert.Equal(t, "[TAB_002] ragged row: line=4", ae.Error())

	wrapped := errors.Wrap(io.ErrUnexpectedEOF, errors.ErrCodeTableMalformed, "read failed")
	assert.Equal(t, "[TAB_002] read failed: unexpected EOF", wrapped.Error())
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "nothing"))
}

func TestWrap_PreservesCodeWhenUnknown(t *testing.T) {
	inner := errors.New(errors.ErrCodeTableNotFound, "missing")
	outer := errors.Wrap(inner, errors.CodeUnknown, "loading input")
	assert.Equal(t, errors.ErrCodeTableNotFound, outer.Code)
	assert.True(t, stderrors.Is(outer, inner))
}

func TestIsCode_TraversesChain(t *testing.T) {
	inner := errors.New(errors.ErrCodePatternInvalid, "bad smarts")
	outer := errors.Wrap(inner, errors.ErrCodeConfigInvalid, "stage scaffold")

	assert.True(t, errors.IsCode(outer, errors.ErrCodeConfigInvalid))
	assert.True(t, errors.IsCode(outer, errors.ErrCodePatternInvalid))
	assert.False(t, errors.IsCode(outer, errors.ErrCodeTableMalformed))
	assert.False(t, errors.IsCode(nil, errors.ErrCodeTableMalformed))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(io.EOF))
	assert.Equal(t, errors.ErrCodeTableNotFound, errors.GetCode(errors.New(errors.ErrCodeTableNotFound, "x")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, errors.IsNotFound(errors.NotFound("x")))
	assert.True(t, errors.IsNotFound(errors.New(errors.ErrCodeTableNotFound, "x")))
	assert.False(t, errors.IsNotFound(errors.Internal("x")))
}

func TestWithDetail_NilSafe(t *testing.T) {
	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
	assert.Nil(t, ae.WithCause(io.EOF))
}

func TestWithDetail_DoesNotMutateReceiver(t *testing.T) {
	base := errors.InvalidParam("bad")
	derived := base.WithDetail("d")
	assert.Empty(t, base.Detail)
	assert.Equal(t, "d", derived.Detail)
}

func TestNewValidationError(t *testing.T) {
	ae := errors.NewValidationError("input.delimiter", "must be a single character")
	assert.Equal(t, errors.ErrCodeValidation, ae.Code)
	assert.True(t, strings.HasSuffix(ae.Error(), "field=input.delimiter"))
}

func TestDefaultMessage(t *testing.T) {
	assert.Equal(t, "invalid SMARTS pattern", errors.DefaultMessage(errors.ErrCodePatternInvalid))
	assert.Equal(t, "NOPE_1", errors.DefaultMessage(errors.ErrorCode("NOPE_1")))
}

func TestIsFatalLoad(t *testing.T) {
	assert.True(t, errors.IsFatalLoad(errors.ErrCodeTableColumnMissing))
	assert.False(t, errors.IsFatalLoad(errors.ErrCodeMoleculeParsingFailed))
}

//Personal.AI order the ending
