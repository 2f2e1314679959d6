package iats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tournevent/iats/pkg/iats"
)

func TestParseRejectCode(t *testing.T) {
	tests := []struct {
		auth     string
		code     int
		rejected bool
	}{
		{"REJECT: 5", 5, true},
		{"REJECT 05 : bad account", 5, true},
		{"REJECT: 100", 100, true},
		{"REJECT", 0, true},
		{"OK: 678594:", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.auth, func(t *testing.T) {
			code, rejected := iats.ParseRejectCode(tt.auth)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.rejected, rejected)
		})
	}
}

func TestResolveReject(t *testing.T) {
	assert.Equal(t, "Agent code has not been set up on the authorization system. Please call iATS at 1-888-955-5455.", iats.ResolveReject(1))
	assert.Equal(t, "DO NOT REPROCESS. Call iATS at 1-888-955-5455.", iats.ResolveReject(100))
	assert.Equal(t, iats.MsgUnknownRejectCode, iats.ResolveReject(0))
	assert.Equal(t, iats.MsgUnknownRejectCode, iats.ResolveReject(999))
}

func TestResolveReject_KnownCodes(t *testing.T) {
	for _, code := range []int{2, 5, 12, 19, 22, 24, 41, 43, 48, 52} {
		assert.NotEqual(t, iats.MsgUnknownRejectCode, iats.ResolveReject(code), "code %d", code)
	}
}
