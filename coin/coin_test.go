package coin

import (
	"encoding/json"
	"testing"

	"github.com/causefund/fundmgr/errors"
	"github.com/causefund/fundmgr/fundtest/assert"
)

func TestCompareCoin(t *testing.T) {
	cases := map[string]struct {
		a       Coin
		b       Coin
		wantRes int
	}{
		"a greater than b": {
			a:       NewCoin(20, 1234, "ABC"),
			b:       NewCoin(19, 999999999, "ABC"),
			wantRes: 1,
		},
		"a smaller than b": {
			a:       NewCoin(0, -2, "FOO"),
			b:       NewCoin(0, 1, "FOO"),
			wantRes: -1,
		},
		"a greater than b and both negative": {
			a:       NewCoin(-4, -2456, "BAR"),
			b:       NewCoin(-4, -4567, "BAR"),
			wantRes: 1,
		},
		"zero value coins": {
			a:       Coin{},
			b:       Coin{},
			wantRes: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res := tc.a.Compare(tc.b)
			assert.Equal(t, tc.wantRes, res)
		})
	}
}

func TestCoinAddSubtract(t *testing.T) {
	a := NewCoin(100, 500, "PYUSD")
	b := NewCoin(25, 700, "PYUSD")

	sum, err := a.Add(b)
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(125, 1200, "PYUSD"), sum)

	diff, err := sum.Subtract(b)
	assert.Nil(t, err)
	assert.Equal(t, a, diff)
}

func TestCoinAddDifferentCurrency(t *testing.T) {
	a := NewCoin(1, 0, "PYUSD")
	b := NewCoin(1, 0, "USDC")
	if _, err := a.Add(b); !errors.ErrCurrency.Is(err) {
		t.Fatalf("want currency mismatch, got %+v", err)
	}
}

func TestCoinAddNormalizes(t *testing.T) {
	a := NewCoin(0, 999999998, "FOO")
	sum, err := a.Add(NewCoin(0, 3, "FOO"))
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(1, 1, "FOO"), sum)
}

func TestCoinDivide(t *testing.T) {
	cases := map[string]struct {
		total    Coin
		pieces   int64
		wantOne  Coin
		wantRest Coin
		wantErr  *errors.Error
	}{
		"even split": {
			total:    NewCoin(900, 0, "PYUSD"),
			pieces:   3,
			wantOne:  NewCoin(300, 0, "PYUSD"),
			wantRest: NewCoin(0, 0, "PYUSD"),
		},
		"split with leftover": {
			total:    NewCoin(4, 0, "EUR"),
			pieces:   3,
			wantOne:  NewCoin(1, 333333333, "EUR"),
			wantRest: NewCoin(0, 1, "EUR"),
		},
		"invalid pieces count": {
			total:   NewCoin(4, 0, "EUR"),
			pieces:  0,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			one, rest, err := tc.total.Divide(tc.pieces)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.wantOne, one)
			assert.Equal(t, tc.wantRest, rest)
		})
	}
}

func TestCoinMultiply(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		times   int64
		want    Coin
		wantErr *errors.Error
	}{
		"zero times": {
			coin:  NewCoin(1, 1, "DOGE"),
			times: 0,
			want:  NewCoin(0, 0, "DOGE"),
		},
		"simple multiply": {
			coin:  NewCoin(1, 0, "DOGE"),
			times: 3,
			want:  NewCoin(3, 0, "DOGE"),
		},
		"multiply with normalization": {
			coin:  NewCoin(0, FracUnit/2, "DOGE"),
			times: 3,
			want:  NewCoin(1, FracUnit/2, "DOGE"),
		},
		"overflow": {
			coin:    NewCoin(MaxInt, 0, "DOGE"),
			times:   MaxInt,
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.coin.Multiply(tc.times)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidCoin(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid coin": {
			coin: NewCoin(42, 0, "PYUSD"),
		},
		"invalid currency code": {
			coin:    NewCoin(42, 0, "a"),
			wantErr: errors.ErrCurrency,
		},
		"whole out of range": {
			coin:    NewCoin(MaxInt+1, 0, "PYUSD"),
			wantErr: errors.ErrOverflow,
		},
		"mismatched sign": {
			coin:    NewCoin(5, -5, "PYUSD"),
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.coin.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected validation result: %+v", err)
			}
		})
	}
}

func TestCoinJSONUnmarshal(t *testing.T) {
	cases := map[string]struct {
		json    string
		want    Coin
		wantErr bool
	}{
		"human readable format": {
			json: `"42.5 PYUSD"`,
			want: NewCoin(42, FracUnit/2, "PYUSD"),
		},
		"object format": {
			json: `{"whole": 42, "ticker": "PYUSD"}`,
			want: NewCoin(42, 0, "PYUSD"),
		},
		"invalid human format": {
			json:    `"42 pyusd"`,
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Coin
			err := json.Unmarshal([]byte(tc.json), &got)
			if tc.wantErr {
				if err == nil {
					t.Fatal("error expected")
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoinString(t *testing.T) {
	cases := map[string]struct {
		coin Coin
		want string
	}{
		"whole only":      {coin: NewCoin(42, 0, "PYUSD"), want: "42 PYUSD"},
		"with fractional": {coin: NewCoin(42, FracUnit/2, "PYUSD"), want: "42.5 PYUSD"},
		"no ticker":       {coin: NewCoin(7, 0, ""), want: "7"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.coin.String())
		})
	}
}
