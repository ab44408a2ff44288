package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

const (
	// HTTPListeningPortKey is the port where the HTTP interface will listen on
	HTTPListeningPortKey = "HTTP_LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// DefaultPercentageFeeKey is the marketplace fee applied to sales until the owner changes it
	DefaultPercentageFeeKey = "DEFAULT_PERCENTAGE_FEE"
	// FeeOwnerKey is the identity allowed to configure and withdraw marketplace fees
	FeeOwnerKey = "FEE_OWNER"
	// RegistryAddressKey is the custody identity under which the registries escrow assets
	RegistryAddressKey = "REGISTRY_ADDRESS"
	// WebhookTimeoutKey are the seconds to wait for webhook responses before timing out
	WebhookTimeoutKey = "WEBHOOK_REQUEST_TIMEOUT"

	DbLocation = "db"
)

var vip *viper.Viper

// InitConfig sets the defaults and reads the environment. It must be called
// before any getter.
func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("BAZAAR")
	vip.AutomaticEnv()

	vip.SetDefault(HTTPListeningPortKey, 9945)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, "badger")
	vip.SetDefault(DefaultPercentageFeeKey, 5)
	vip.SetDefault(DatadirKey, defaultDatadir())
	vip.SetDefault(WebhookTimeoutKey, 10)
	vip.SetDefault(
		RegistryAddressKey, "0x00000000000000000000000000000000ba2aa9d0",
	)
	vip.SetDefault(
		FeeOwnerKey, "0x0000000000000000000000000000000000000001",
	)

	return validate()
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint32(key string) uint32 {
	return vip.GetUint32(key)
}

func GetDuration(key string) time.Duration {
	return time.Duration(vip.GetInt(key)) * time.Second
}

// GetAddress parses the value of the given key as an identity address.
func GetAddress(key string) common.Address {
	return common.HexToAddress(vip.GetString(key))
}

// GetDbDir returns the directory holding the database files.
func GetDbDir() string {
	return filepath.Join(vip.GetString(DatadirKey), DbLocation)
}

func validate() error {
	if dbType := vip.GetString(DBTypeKey); dbType != "badger" && dbType != "inmemory" {
		return fmt.Errorf("%s must be either 'badger' or 'inmemory'", DBTypeKey)
	}
	if pct := vip.GetUint32(DefaultPercentageFeeKey); pct > 100 {
		return fmt.Errorf("%s must be in range [0, 100]", DefaultPercentageFeeKey)
	}
	for _, key := range []string{FeeOwnerKey, RegistryAddressKey} {
		if !common.IsHexAddress(vip.GetString(key)) {
			return fmt.Errorf("%s must be a valid identity address", key)
		}
	}
	return nil
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bazaard"
	}
	return filepath.Join(home, ".bazaard")
}
