package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIDUnmarshal(t *testing.T) {
	cases := []struct {
		raw  string
		want FlexID
	}{
		{`"7"`, "7"},
		{`7`, "7"},
		{`7.0`, "7"},
		{`"  emp-1  "`, "emp-1"},
		{`""`, ""},
		{`null`, ""},
		{`true`, ""},
	}

	for _, tc := range cases {
		var id FlexID
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &id), "raw=%s", tc.raw)
		assert.Equal(t, tc.want, id, "raw=%s", tc.raw)
	}
}

func TestFlexIDUnmarshal_InStruct(t *testing.T) {
	var payload struct {
		DriverID FlexID `json:"driver_id"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"driver_id": 42}`), &payload))
	assert.Equal(t, FlexID("42"), payload.DriverID)
}

func TestFlexIDPtr(t *testing.T) {
	assert.Nil(t, FlexID("").Ptr())

	ptr := FlexID("emp-1").Ptr()
	require.NotNil(t, ptr)
	assert.Equal(t, "emp-1", *ptr)
}
