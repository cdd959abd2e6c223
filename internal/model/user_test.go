package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserKind(t *testing.T) {
	tests := []struct {
		in      string
		want    UserKind
		wantErr bool
	}{
		{"customer", KindCustomer, false},
		{"staff", KindStaff, false},
		{"artist", "", true},
		{"Customer", "", true},
		{"", "", true},
		{" staff", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUserKind(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidUserType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserKindColumns(t *testing.T) {
	assert.Equal(t, "customer", KindCustomer.Table())
	assert.Equal(t, "customer_id", KindCustomer.IDColumn())
	assert.Equal(t, "staff", KindStaff.Table())
	assert.Equal(t, "staff_id", KindStaff.IDColumn())
}

func TestProjectWireShape(t *testing.T) {
	ts := time.Date(2006, 2, 15, 4, 57, 20, 0, time.UTC)
	u := Project(KindStaff, 2, "Jon", "Stephens", true, ts)

	b, err := json.Marshal(u)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, map[string]any{
		"id":          float64(2),
		"type":        "staff",
		"first_name":  "Jon",
		"last_name":   "Stephens",
		"active":      true,
		"last_update": "2006-02-15T04:57:20Z",
	}, got)
}
