package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of
	// the wallet
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// ExplorerEndpointKey is the HTTP endpoint of the nock explorer used for
	// querying notes and broadcasting transactions
	ExplorerEndpointKey = "EXPLORER_ENDPOINT"
	// NicksPerByteKey is the fee rate in nicks per byte applied to sends
	// unless overridden per request
	NicksPerByteKey = "NICKS_PER_BYTE"
	// ExplorerRequestTimeoutKey is the timeout for requests towards the
	// explorer
	ExplorerRequestTimeoutKey = "EXPLORER_REQUEST_TIMEOUT"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("nockd", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("NOCK")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(ExplorerEndpointKey, "http://localhost:3300")
	vip.SetDefault(NicksPerByteKey, 1)
	vip.SetDefault(ExplorerRequestTimeoutKey, 30*time.Second)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	explorerEndpoint := GetString(ExplorerEndpointKey)
	if len(explorerEndpoint) <= 0 {
		return fmt.Errorf("missing explorer endpoint")
	}

	if GetUint64(NicksPerByteKey) < 1 {
		return fmt.Errorf("%s must be equal or greater than 1", NicksPerByteKey)
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(GetDbDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
