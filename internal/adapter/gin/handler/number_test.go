package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "usuarios-api/pkg/errors"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"integer", `{"edad":30}`, 30},
		{"fraction", `{"edad":30.5}`, 30.5},
		{"exponent", `{"edad":1e3}`, 1000},
		{"numeric string", `{"edad":"31"}`, 31},
		{"padded string", `{"edad":" 32.5 "}`, 32.5},
		{"negative string", `{"edad":"-7"}`, -7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateUserRequest
			require.NoError(t, json.Unmarshal([]byte(tt.in), &req))
			require.NotNil(t, req.Edad)
			assert.Equal(t, tt.want, *req.Edad.Ptr())
		})
	}
}

func TestNumber_Rejects(t *testing.T) {
	for _, in := range []string{`true`, `"abc"`, `""`, `"NaN"`, `"Infinity"`, `{}`, `[1]`} {
		t.Run(in, func(t *testing.T) {
			var req CreateUserRequest
			err := json.Unmarshal([]byte(`{"edad":`+in+`}`), &req)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidation(err))
		})
	}
}

func TestNumber_NullIsAbsent(t *testing.T) {
	var req CreateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"edad":null}`), &req))
	assert.Nil(t, req.Edad)
	assert.Nil(t, req.Edad.Ptr())
}
