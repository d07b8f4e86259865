package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arkade-os/tokend/internal/core/application"
	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/core/ports"
	"github.com/arkade-os/tokend/internal/infrastructure/auth"
	"github.com/arkade-os/tokend/internal/infrastructure/db"
	"github.com/arkade-os/tokend/internal/infrastructure/notifier"
	"github.com/arkade-os/tokend/internal/infrastructure/signer"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd/clock"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const vestingConfigKey = "vesting"

var (
	supportedDbs = supportedType{
		"badger": {},
		"sqlite": {},
	}
	supportedNotifiers = supportedType{
		"inmemory": {},
		"none":     {},
	}
)

type Config struct {
	Datadir  string
	LogLevel int

	DbType          string
	DbDir           string
	NotifierType    string
	ContractAccount string
	NativeSymbol    string
	RefundDelay     int64
	VestingConfig   string
	Accounts        []string

	vestingPolicies []domain.VestingPolicy
	repo            ports.RepoManager
	authorizer      ports.Authorizer
	verifier        ports.SignatureVerifier
	notifier        ports.Notifier
	clock           clock.Clock
	svc             application.Service
}

func (c *Config) String() string {
	json, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("error while marshalling config JSON: %s", err)
	}
	return string(json)
}

var (
	defaultDatadir         = btcutil.AppDataDir("tokend", false)
	defaultDbType          = "badger"
	defaultNotifierType    = "inmemory"
	defaultLogLevel        = 4
	defaultContractAccount = "tokend"
	defaultNativeSymbol    = "4,PEOS"
	defaultRefundDelay     = 3 * 24 * 60 * 60
)

// env returns a list of strings prefixed with `TOKEND_`.
// This is used as a syntax sugar for defining env vars.
func env(values ...string) []string {
	envs := make([]string, len(values))

	for i, value := range values {
		envs[i] = fmt.Sprintf("TOKEND_%s", value)
	}
	return envs
}

var (
	Datadir = &cli.StringFlag{
		Usage: "Directory to store data",
		Name:  "datadir", EnvVars: env("DATADIR"),
		Value: defaultDatadir,
	}

	LogLevel = &cli.IntFlag{
		Usage: "Logging level (0-6, where 6 is trace)",
		Name:  "log-level", EnvVars: env("LOG_LEVEL"),
		Value: defaultLogLevel,
	}

	DbType = &cli.StringFlag{
		Usage: "Database type (badger, sqlite)",
		Name:  "db-type", EnvVars: env("DB_TYPE"),
		Value: defaultDbType,
	}

	NotifierType = &cli.StringFlag{
		Usage: "Ledger events notifier type (inmemory, none)",
		Name:  "notifier-type", EnvVars: env("NOTIFIER_TYPE"),
		Value: defaultNotifierType,
	}

	ContractAccount = &cli.StringFlag{
		Usage: "Account owning the ledger, it holds the value of notes, stakes and dividends",
		Name:  "contract-account", EnvVars: env("CONTRACT_ACCOUNT"),
		Value: defaultContractAccount,
	}

	NativeSymbol = &cli.StringFlag{
		Usage: "Symbol of the asset used for notes, staking and dividends",
		Name:  "native-symbol", EnvVars: env("NATIVE_SYMBOL"),
		Value: defaultNativeSymbol,
	}

	RefundDelay = &cli.Int64Flag{
		Usage: "Seconds between an unstake and the availability of its refund",
		Name:  "refund-delay", EnvVars: env("REFUND_DELAY"),
		Value:       int64(defaultRefundDelay),
		DefaultText: fmt.Sprintf("%d (3 days)", defaultRefundDelay),
	}

	VestingConfig = &cli.StringFlag{
		Usage: "Path to the file (yaml, json, toml) listing the vesting policies under the " +
			"`vesting` key, issuance is unrestricted if unset",
		Name: "vesting-config", EnvVars: env("VESTING_CONFIG"),
	}

	Accounts = &cli.StringSliceFlag{
		Usage: "Allow list of existing accounts, any valid name exists if unset",
		Name:  "accounts", EnvVars: env("ACCOUNTS"),
	}
)

var Flags = []cli.Flag{
	Datadir,
	LogLevel,
	DbType,
	NotifierType,
	ContractAccount,
	NativeSymbol,
	RefundDelay,
	VestingConfig,
	Accounts,
}

func LoadConfig(c *cli.Context) (*Config, error) {
	if err := initDatadir(c); err != nil {
		return nil, fmt.Errorf("failed to create datadir: %s", err)
	}

	dbPath := filepath.Join(c.String(Datadir.Name), "db")

	return &Config{
		Datadir:         c.String(Datadir.Name),
		LogLevel:        c.Int(LogLevel.Name),
		DbType:          c.String(DbType.Name),
		DbDir:           dbPath,
		NotifierType:    c.String(NotifierType.Name),
		ContractAccount: c.String(ContractAccount.Name),
		NativeSymbol:    c.String(NativeSymbol.Name),
		RefundDelay:     c.Int64(RefundDelay.Name),
		VestingConfig:   c.String(VestingConfig.Name),
		Accounts:        c.StringSlice(Accounts.Name),
	}, nil
}

func initDatadir(c *cli.Context) error {
	datadir := c.String(Datadir.Name)
	return makeDirectoryIfNotExists(datadir)
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0o755)
	}
	return nil
}

func (c *Config) Validate() error {
	if !supportedDbs.supports(c.DbType) {
		return fmt.Errorf("db type not supported, please select one of: %s", supportedDbs)
	}
	if !supportedNotifiers.supports(c.NotifierType) {
		return fmt.Errorf(
			"notifier type not supported, please select one of: %s", supportedNotifiers,
		)
	}
	if !domain.Name(c.ContractAccount).IsValid() {
		return fmt.Errorf("invalid contract account %q", c.ContractAccount)
	}
	if _, err := domain.ParseSymbol(c.NativeSymbol); err != nil {
		return fmt.Errorf("invalid native symbol: %s", err)
	}
	if c.RefundDelay < 0 {
		return fmt.Errorf("invalid refund delay, must not be negative")
	}
	if c.RefundDelay == 0 {
		log.Debugf("refund delay is disabled")
	}
	if err := c.loadVestingPolicies(); err != nil {
		return err
	}

	if err := c.authorizerService(); err != nil {
		return err
	}
	if err := c.repoManager(); err != nil {
		return err
	}
	c.verifier = signer.NewVerifier()
	c.clock = clock.NewDefaultClock()
	c.notifierService()
	return nil
}

func (c *Config) AppService() (application.Service, error) {
	if c.svc == nil {
		if err := c.appService(); err != nil {
			return nil, err
		}
	}
	return c.svc, nil
}

func (c *Config) Notifier() ports.Notifier {
	return c.notifier
}

func (c *Config) VestingPolicies() []domain.VestingPolicy {
	return c.vestingPolicies
}

// loadVestingPolicies reads the vesting table from the configured file, if
// any.
func (c *Config) loadVestingPolicies() error {
	if len(c.VestingConfig) <= 0 {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(c.VestingConfig)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read vesting config: %s", err)
	}

	policies := make([]domain.VestingPolicy, 0)
	if err := v.UnmarshalKey(vestingConfigKey, &policies); err != nil {
		return fmt.Errorf("failed to parse vesting config: %s", err)
	}
	for _, policy := range policies {
		if err := policy.Validate(); err != nil {
			return fmt.Errorf("invalid vesting config: %s", err)
		}
	}

	c.vestingPolicies = policies
	return nil
}

func (c *Config) authorizerService() error {
	accounts := make([]domain.Name, 0, len(c.Accounts))
	for _, account := range c.Accounts {
		accounts = append(accounts, domain.Name(account))
	}
	// The contract account must always exist.
	if len(accounts) > 0 {
		accounts = append(accounts, domain.Name(c.ContractAccount))
	}

	svc, err := auth.NewAuthorizer(accounts...)
	if err != nil {
		return err
	}
	c.authorizer = svc
	return nil
}

func (c *Config) repoManager() error {
	var svc ports.RepoManager
	var err error
	var dataStoreConfig []interface{}
	logger := log.New()
	logger.SetLevel(log.Level(c.LogLevel))

	switch c.DbType {
	case "badger":
		dataStoreConfig = []interface{}{c.DbDir, logger}
	case "sqlite":
		dataStoreConfig = []interface{}{c.DbDir}
	default:
		return fmt.Errorf("unknown db type")
	}

	svc, err = db.NewService(db.ServiceConfig{
		DataStoreType:   c.DbType,
		DataStoreConfig: dataStoreConfig,
	})
	if err != nil {
		return err
	}

	c.repo = svc
	return nil
}

func (c *Config) notifierService() {
	if c.NotifierType == "none" {
		return
	}
	c.notifier = notifier.NewInMemoryNotifier()
}

func (c *Config) appService() error {
	if c.repo == nil {
		return fmt.Errorf("config not validated")
	}

	nativeSymbol, err := domain.ParseSymbol(c.NativeSymbol)
	if err != nil {
		return err
	}

	svc, err := application.NewService(
		application.Config{
			ContractAccount: domain.Name(c.ContractAccount),
			NativeSymbol:    nativeSymbol,
			RefundDelay:     c.RefundDelay,
			VestingPolicies: c.vestingPolicies,
		},
		c.repo, c.authorizer, c.verifier, c.notifier, c.clock,
	)
	if err != nil {
		return err
	}

	c.svc = svc
	return nil
}

type supportedType map[string]struct{}

func (t supportedType) String() string {
	types := make([]string, 0, len(t))
	for tt := range t {
		types = append(types, tt)
	}
	return strings.Join(types, " | ")
}

func (t supportedType) supports(typeStr string) bool {
	_, ok := t[typeStr]
	return ok
}
