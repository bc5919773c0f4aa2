package fund

import (
	"testing"
	"time"

	"github.com/causefund/fundmgr"
	"github.com/causefund/fundmgr/coin"
	"github.com/causefund/fundmgr/errors"
	"github.com/causefund/fundmgr/fundtest"
	"github.com/causefund/fundmgr/fundtest/assert"
)

func validConfiguration() Configuration {
	bs := fundtest.Addresses(3)
	return Configuration{
		Owner:  fundtest.NewAddress("owner"),
		Ticker: "PYUSD",
		Beneficiaries: []Beneficiary{
			{Address: bs[0], SharePercentage: 5000},
			{Address: bs[1], SharePercentage: 3000},
			{Address: bs[2], SharePercentage: 2000},
		},
		Governors: []fundmgr.Address{
			fundtest.NewAddress("g1"),
			fundtest.NewAddress("g2"),
			fundtest.NewAddress("g3"),
		},
		RequiredApprovals:  2,
		TimesAllowed:       5,
		LimitPerWithdrawal: coin.NewCoin(1000, 0, "PYUSD"),
		TotalLimit:         coin.NewCoin(5000, 0, "PYUSD"),
		BaseReleaseAmount:  coin.NewCoin(10, 0, "PYUSD"),
		ReleaseInterval:    60 * 60 * 24 * 30,
		MaturityDate:       fundmgr.AsUnixTime(time.Now().Add(365 * 24 * time.Hour)),
		CauseName:          "clean water",
		CauseDescription:   "wells for the region",
	}
}

func TestConfigurationValidate(t *testing.T) {
	cases := map[string]struct {
		mod     func(*Configuration)
		wantErr *errors.Error
	}{
		"valid": {
			mod: func(*Configuration) {},
		},
		"missing owner": {
			mod:     func(c *Configuration) { c.Owner = nil },
			wantErr: errors.ErrInput,
		},
		"bad ticker": {
			mod:     func(c *Configuration) { c.Ticker = "py" },
			wantErr: errors.ErrCurrency,
		},
		"no governors": {
			mod:     func(c *Configuration) { c.Governors = nil },
			wantErr: errors.ErrEmpty,
		},
		"duplicate governor": {
			mod: func(c *Configuration) {
				c.Governors[1] = c.Governors[0]
			},
			wantErr: errors.ErrDuplicate,
		},
		"zero required approvals": {
			mod:     func(c *Configuration) { c.RequiredApprovals = 0 },
			wantErr: errors.ErrInput,
		},
		"required approvals above governor count": {
			mod:     func(c *Configuration) { c.RequiredApprovals = 4 },
			wantErr: errors.ErrInput,
		},
		"negative times allowed": {
			mod:     func(c *Configuration) { c.TimesAllowed = -1 },
			wantErr: errors.ErrInput,
		},
		"zero limit per withdrawal": {
			mod:     func(c *Configuration) { c.LimitPerWithdrawal = coin.NewCoin(0, 0, "PYUSD") },
			wantErr: errors.ErrAmount,
		},
		"zero total limit": {
			mod:     func(c *Configuration) { c.TotalLimit = coin.NewCoin(0, 0, "PYUSD") },
			wantErr: errors.ErrAmount,
		},
		"foreign currency limit": {
			mod:     func(c *Configuration) { c.TotalLimit = coin.NewCoin(5000, 0, "USDC") },
			wantErr: errors.ErrCurrency,
		},
		"missing cause name": {
			mod:     func(c *Configuration) { c.CauseName = "" },
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			conf := validConfiguration()
			tc.mod(&conf)
			if err := conf.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected validation result: %+v", err)
			}
		})
	}
}

func TestConfigurationIsGovernor(t *testing.T) {
	conf := validConfiguration()
	assert.Equal(t, true, conf.IsGovernor(conf.Governors[0]))
	assert.Equal(t, false, conf.IsGovernor(conf.Owner))
	assert.Equal(t, false, conf.IsGovernor(fundtest.NewAddress("stranger")))
}

func TestLoadConfiguration(t *testing.T) {
	raw := []byte(`{
		"owner": "C41F3395AEA1566F9F1B6A4D394E7D0427AE1E35",
		"ticker": "PYUSD",
		"required_approvals": 1,
		"times_allowed": 2,
		"cause_name": "clean water"
	}`)
	conf, err := LoadConfiguration(raw)
	assert.Nil(t, err)
	assert.Equal(t, "PYUSD", conf.Ticker)
	assert.Equal(t, 1, conf.RequiredApprovals)
	assert.Equal(t, int64(2), conf.TimesAllowed)
	assert.Equal(t, "clean water", conf.CauseName)
	assert.Nil(t, conf.Owner.Validate())

	if _, err := LoadConfiguration([]byte("{broken")); err == nil {
		t.Fatal("broken json must not parse")
	}
}
