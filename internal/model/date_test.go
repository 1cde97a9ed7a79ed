package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "plain date", input: `"2022-02-25"`, want: NewDate(2022, time.February, 25)},
		{name: "rfc3339 truncated", input: `"2018-10-26T15:04:05Z"`, want: NewDate(2018, time.October, 26)},
		{name: "garbage", input: `"next tuesday"`, wantErr: true},
		{name: "not a string", input: `20220225`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time), "got %s, want %s", d, tt.want)
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(NewDate(2015, time.May, 19))
	require.NoError(t, err)
	assert.Equal(t, `"2015-05-19"`, string(b))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan("2022-02-25"))
	assert.Equal(t, "2022-02-25", d.String())

	require.NoError(t, d.Scan([]byte("2018-10-26")))
	assert.Equal(t, "2018-10-26", d.String())

	require.NoError(t, d.Scan(time.Date(2015, time.May, 19, 12, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2015-05-19", d.String())

	assert.Error(t, d.Scan(42))
}
