package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "SHOPCART_CONFIG_FILE"

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid config")

type storage struct {
	Driver string `mapstructure:"driver"`
	SQLDB  string `mapstructure:"sql_db"`
}

type consumers struct {
	CouponTableGroup string `mapstructure:"coupon_table_group"`
}

type topics struct {
	CatalogEvents string `mapstructure:"catalog_events"`
	CouponEvents  string `mapstructure:"coupon_events"`
}

type TLS struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type broker struct {
	Enabled            bool      `mapstructure:"enabled"`
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
	TLS                TLS       `mapstructure:"tls"`
}

type notify struct {
	BufferSize int `mapstructure:"buffer_size"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Storage        storage    `mapstructure:"storage"`
	Broker         broker     `mapstructure:"broker"`
	Notify         notify     `mapstructure:"notify"`
}

// Load reads the config file named by the --config flag or the
// SHOPCART_CONFIG_FILE env. The process exits with code 2 on failure.
func Load() Config {
	cfg, err := Read(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// Read loads and checks the config file at path.
func Read(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("storage.driver", DriverMemory)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.UnmarshalExact(&cfg, decodeHook); err != nil {
		return Config{}, err
	}

	if err := cfg.check(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) check() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Storage.SQLDB == "" {
			return fmt.Errorf("%w: storage.sql_db is required for %q driver",
				ErrInvalidConfig, DriverPostgres)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q",
			ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Notify.BufferSize < 0 {
		return fmt.Errorf("%w: notify.buffer_size must not be negative",
			ErrInvalidConfig)
	}

	if !c.Broker.Enabled {
		return nil
	}
	switch {
	case len(c.Broker.SeedBrokers) == 0:
		return fmt.Errorf("%w: broker.seed_brokers is empty", ErrInvalidConfig)
	case len(c.Broker.SchemaRegistryURLs) == 0:
		return fmt.Errorf("%w: broker.schema_registry_urls is empty", ErrInvalidConfig)
	case c.Broker.Topics.CatalogEvents == "" || c.Broker.Topics.CouponEvents == "":
		return fmt.Errorf("%w: broker.topics are not set", ErrInvalidConfig)
	case c.Broker.Consumers.CouponTableGroup == "":
		return fmt.Errorf("%w: broker.consumers.coupon_table_group is not set",
			ErrInvalidConfig)
	}
	return nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	Storage:
	Driver=%q
	SQLDB=%q

	BrokerConfig:
	Enabled=%t
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		CatalogEvents=%q
		CouponEvents=%q
	Consumers:
		CouponTableGroup=%q
	TLS:
		CA=%q

	Notify:
	BufferSize=%d

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Storage.Driver,
		maskDSN(c.Storage.SQLDB),
		c.Broker.Enabled,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.CatalogEvents,
		c.Broker.Topics.CouponEvents,
		c.Broker.Consumers.CouponTableGroup,
		c.Broker.TLS.CA,
		c.Notify.BufferSize,
	)
}

// maskDSN hides the password of a postgres URL.
func maskDSN(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dsn
	}
	user, _, hasPass := strings.Cut(userinfo, ":")
	if !hasPass {
		return dsn
	}
	return scheme + "://" + user + ":***@" + host
}
