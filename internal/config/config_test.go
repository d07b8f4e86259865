package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const vestingYaml = `
vesting:
  - account: teamfund
    type: flat
    cap: 1000000
  - account: founder
    type: linear
    cap: 5000000
    epoch: 1700000000
    period: 31536000
`

func TestLoadConfig(t *testing.T) {
	datadir := filepath.Join(t.TempDir(), "tokend")

	var cfg *Config
	app := cli.NewApp()
	app.Flags = Flags
	app.Action = func(ctx *cli.Context) error {
		var err error
		cfg, err = LoadConfig(ctx)
		return err
	}

	err := app.Run([]string{
		"tokend",
		"--datadir", datadir,
		"--db-type", "sqlite",
		"--native-symbol", "2,TKN",
		"--accounts", "alice",
		"--accounts", "bob",
	})
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.DirExists(t, datadir)
	require.Equal(t, filepath.Join(datadir, "db"), cfg.DbDir)
	require.Equal(t, "sqlite", cfg.DbType)
	require.Equal(t, defaultContractAccount, cfg.ContractAccount)
	require.Equal(t, "2,TKN", cfg.NativeSymbol)
	require.Equal(t, int64(defaultRefundDelay), cfg.RefundDelay)
	require.Equal(t, []string{"alice", "bob"}, cfg.Accounts)
}

func TestValidate(t *testing.T) {
	validConfig := func(t *testing.T) *Config {
		return &Config{
			Datadir:         t.TempDir(),
			LogLevel:        defaultLogLevel,
			DbType:          "badger",
			DbDir:           t.TempDir(),
			NotifierType:    defaultNotifierType,
			ContractAccount: defaultContractAccount,
			NativeSymbol:    defaultNativeSymbol,
			RefundDelay:     int64(defaultRefundDelay),
		}
	}

	t.Run("valid", func(t *testing.T) {
		vestingFile := filepath.Join(t.TempDir(), "vesting.yaml")
		require.NoError(t, os.WriteFile(vestingFile, []byte(vestingYaml), 0o600))

		cfg := validConfig(t)
		cfg.VestingConfig = vestingFile
		cfg.Accounts = []string{"alice"}
		require.NoError(t, cfg.Validate())

		require.Equal(t, []domain.VestingPolicy{
			domain.NewFlatVestingPolicy("teamfund", 1000000),
			domain.NewLinearVestingPolicy("founder", 5000000, 1700000000, 31536000),
		}, cfg.VestingPolicies())
		require.NotNil(t, cfg.Notifier())

		svc, err := cfg.AppService()
		require.NoError(t, err)
		require.NotNil(t, svc)
		svc.Stop()
	})

	t.Run("invalid", func(t *testing.T) {
		testCases := []struct {
			name   string
			update func(cfg *Config)
		}{
			{
				name:   "db type",
				update: func(cfg *Config) { cfg.DbType = "postgres" },
			},
			{
				name:   "notifier type",
				update: func(cfg *Config) { cfg.NotifierType = "redis" },
			},
			{
				name:   "contract account",
				update: func(cfg *Config) { cfg.ContractAccount = "Tokend" },
			},
			{
				name:   "native symbol",
				update: func(cfg *Config) { cfg.NativeSymbol = "PEOS" },
			},
			{
				name:   "refund delay",
				update: func(cfg *Config) { cfg.RefundDelay = -1 },
			},
			{
				name:   "missing vesting config",
				update: func(cfg *Config) { cfg.VestingConfig = "/nonexistent/vesting.yaml" },
			},
			{
				name:   "accounts",
				update: func(cfg *Config) { cfg.Accounts = []string{"Alice"} },
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				cfg := validConfig(t)
				tc.update(cfg)
				require.Error(t, cfg.Validate())
			})
		}
	})

	t.Run("invalid vesting policy", func(t *testing.T) {
		vestingFile := filepath.Join(t.TempDir(), "vesting.json")
		err := os.WriteFile(
			vestingFile,
			[]byte(`{"vesting": [{"account": "founder", "type": "linear", "cap": 10}]}`),
			0o600,
		)
		require.NoError(t, err)

		cfg := validConfig(t)
		cfg.VestingConfig = vestingFile
		require.Error(t, cfg.Validate())
	})

	t.Run("app service before validation", func(t *testing.T) {
		cfg := validConfig(t)
		svc, err := cfg.AppService()
		require.Error(t, err)
		require.Nil(t, svc)
	})
}
