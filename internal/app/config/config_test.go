package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Database: DatabaseConfig{TxAttempts: 3},
		Ledger:   LedgerConfig{MinDeposit: 10000, Currency: "VND"},
		Notify:   NotifyConfig{QueueSize: 16},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "zero min deposit", mutate: func(c *Config) { c.Ledger.MinDeposit = 0 }, wantErr: true},
		{name: "negative min deposit", mutate: func(c *Config) { c.Ledger.MinDeposit = -5 }, wantErr: true},
		{name: "no currency", mutate: func(c *Config) { c.Ledger.Currency = "" }, wantErr: true},
		{name: "no tx attempts", mutate: func(c *Config) { c.Database.TxAttempts = 0 }, wantErr: true},
		{name: "no queue", mutate: func(c *Config) { c.Notify.QueueSize = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLedgerConfig_MinDepositAmount(t *testing.T) {
	c := LedgerConfig{MinDeposit: 10000}
	assert.True(t, c.MinDepositAmount().Equal(decimal.NewFromInt(10000)))
}
