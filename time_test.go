package fundmgr_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/causefund/fundmgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnixTimeConversion(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	ut := fundmgr.AsUnixTime(now)
	assert.Equal(t, now.Unix(), int64(ut))
	assert.True(t, ut.Time().Equal(now))
	assert.False(t, ut.IsZero())
	assert.True(t, fundmgr.UnixTime(0).IsZero())
}

func TestUnixTimeAdd(t *testing.T) {
	ut := fundmgr.UnixTime(100)
	assert.Equal(t, fundmgr.UnixTime(160), ut.Add(time.Minute))
	// sub-second precision is truncated
	assert.Equal(t, fundmgr.UnixTime(100), ut.Add(999*time.Millisecond))
	assert.Equal(t, fundmgr.UnixTime(40), ut.Add(-time.Minute))
}

func TestUnixTimeUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json    string
		want    fundmgr.UnixTime
		wantErr bool
	}{
		"number": {
			json: `1772366400`,
			want: fundmgr.UnixTime(1772366400),
		},
		"string time": {
			json: `"2026-03-01T12:00:00Z"`,
			want: fundmgr.AsUnixTime(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)),
		},
		"garbage": {
			json:    `"not a time"`,
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var ut fundmgr.UnixTime
			err := json.Unmarshal([]byte(tc.json), &ut)
			if tc.wantErr {
				if err == nil {
					t.Fatal("error expected")
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, ut)
		})
	}
}
