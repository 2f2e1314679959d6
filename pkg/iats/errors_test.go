package iats_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tournevent/iats/pkg/iats"
)

func TestError_Error(t *testing.T) {
	err := &iats.Error{Kind: iats.KindAuthorizationRejection, Code: 5, Message: "Invalid transaction."}
	assert.Equal(t, "iats authorization_rejection: Invalid transaction. (code 5)", err.Error())
}

func TestError_ErrorWithCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &iats.Error{Kind: iats.KindTransportFailure, Message: "call failed", Cause: cause}
	assert.Contains(t, err.Error(), "call failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestError_Unwrap(t *testing.T) {
	err := &iats.Error{Kind: iats.KindValidationFailure, Message: iats.MsgServerRestricted, Cause: iats.ErrServerRestricted}
	assert.True(t, errors.Is(err, iats.ErrServerRestricted))
}

func TestError_Is(t *testing.T) {
	err1 := &iats.Error{Kind: iats.KindAuthorizationRejection, Code: 5}
	err2 := &iats.Error{Kind: iats.KindAuthorizationRejection, Code: 19}

	// Same kind should match
	assert.True(t, errors.Is(err1, err2))
	assert.True(t, errors.Is(err1, iats.ErrRejected))
}

func TestError_IsNot(t *testing.T) {
	err := &iats.Error{Kind: iats.KindValidationFailure}

	assert.False(t, errors.Is(err, iats.ErrRejected))
	assert.False(t, errors.Is(err, iats.ErrTransport))
}

func TestIsRejection(t *testing.T) {
	assert.True(t, iats.IsRejection(&iats.Error{Kind: iats.KindAuthorizationRejection}))
	assert.False(t, iats.IsRejection(errors.New("other")))
	assert.False(t, iats.IsRejection(nil))
}

func TestIsTransport(t *testing.T) {
	assert.True(t, iats.IsTransport(&iats.Error{Kind: iats.KindTransportFailure}))
	assert.False(t, iats.IsTransport(&iats.Error{Kind: iats.KindValidationFailure}))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "success", iats.KindSuccess.String())
	assert.Equal(t, "validation_failure", iats.KindValidationFailure.String())
	assert.Equal(t, "authorization_rejection", iats.KindAuthorizationRejection.String())
	assert.Equal(t, "transport_failure", iats.KindTransportFailure.String())
}

func TestResult_ErrNilOnSuccess(t *testing.T) {
	assert.NoError(t, iats.Result{Kind: iats.KindSuccess}.Err())
	assert.True(t, iats.Result{Kind: iats.KindSuccess}.OK())
}
