package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type DeviceConfig struct {
	Hostname        string
	DeviceID        string
	SharedAccessKey string
}

type SASConfig struct {
	Variant         string // "legacy" or "preview"
	ExpiresInMins   int
	CorrectedExpiry bool
}

type MQTTConfig struct {
	Host         string
	Port         int
	KeepAlive    time.Duration
	ClientID     string
	CleanSession bool
}

type TLSConfig struct {
	CACert     string
	ServerName string
	SkipVerify bool
}

type Config struct {
	Device DeviceConfig
	SAS    SASConfig
	MQTT   MQTTConfig
	TLS    TLSConfig
}

func NewConfig() *Config {
	return &Config{
		SAS: SASConfig{
			Variant:       "legacy",
			ExpiresInMins: 5,
		},
		MQTT: MQTTConfig{
			KeepAlive:    60 * time.Second,
			CleanSession: true,
		},
		TLS: TLSConfig{
			SkipVerify: false,
		},
	}
}

func (c *Config) LoadFromEnv() error {
	if val := os.Getenv("IOT_HOSTNAME"); val != "" {
		c.Device.Hostname = val
	}
	if val := os.Getenv("IOT_DEVICE_ID"); val != "" {
		c.Device.DeviceID = val
	}
	if val := os.Getenv("IOT_SHARED_ACCESS_KEY"); val != "" {
		c.Device.SharedAccessKey = val
	}

	if val := os.Getenv("IOT_SAS_VARIANT"); val != "" {
		c.SAS.Variant = val
	}
	if val := os.Getenv("IOT_SAS_EXPIRES_MINS"); val != "" {
		if mins, err := strconv.Atoi(val); err == nil {
			c.SAS.ExpiresInMins = mins
		}
	}
	if val := os.Getenv("IOT_SAS_CORRECTED_EXPIRY"); val != "" {
		if corrected, err := strconv.ParseBool(val); err == nil {
			c.SAS.CorrectedExpiry = corrected
		}
	}

	if val := os.Getenv("IOT_MQTT_HOST"); val != "" {
		c.MQTT.Host = val
	}
	if val := os.Getenv("IOT_MQTT_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.MQTT.Port = port
		}
	}
	if val := os.Getenv("IOT_MQTT_KEEPALIVE"); val != "" {
		if keepAlive, err := strconv.Atoi(val); err == nil {
			c.MQTT.KeepAlive = time.Duration(keepAlive) * time.Second
		}
	}
	if val := os.Getenv("IOT_MQTT_CLIENT_ID"); val != "" {
		c.MQTT.ClientID = val
	}

	if val := os.Getenv("IOT_TLS_CA_CERT"); val != "" {
		c.TLS.CACert = val
	}
	if val := os.Getenv("IOT_TLS_SERVER_NAME"); val != "" {
		c.TLS.ServerName = val
	}
	if val := os.Getenv("IOT_TLS_SKIP_VERIFY"); val != "" {
		if skipVerify, err := strconv.ParseBool(val); err == nil {
			c.TLS.SkipVerify = skipVerify
		}
	}

	return nil
}

func (c *Config) Validate() error {
	if c.Device.Hostname == "" {
		return fmt.Errorf("hostname is required")
	}
	if c.Device.DeviceID == "" {
		return fmt.Errorf("device ID is required")
	}
	if c.Device.SharedAccessKey == "" {
		return fmt.Errorf("shared access key is required")
	}
	if v := c.GetVariant(); v != "legacy" && v != "preview" {
		return fmt.Errorf("SAS variant must be legacy or preview")
	}
	if c.SAS.ExpiresInMins < 0 {
		return fmt.Errorf("SAS expiry minutes must not be negative")
	}
	if c.MQTT.Port < 0 || c.MQTT.Port > 65535 {
		return fmt.Errorf("MQTT port must be between 0 and 65535")
	}
	return nil
}

func (c *Config) GenerateClientID() string {
	if c.MQTT.ClientID != "" {
		return c.MQTT.ClientID
	}
	return c.Device.DeviceID
}

func (c *Config) GetVariant() string {
	if c.SAS.Variant != "" {
		return c.SAS.Variant
	}
	return "legacy"
}

// BrokerHost is the MQTT endpoint host, which is the device hostname unless
// overridden for gateways or local test brokers.
func (c *Config) BrokerHost() string {
	if c.MQTT.Host != "" {
		return c.MQTT.Host
	}
	return c.Device.Hostname
}
