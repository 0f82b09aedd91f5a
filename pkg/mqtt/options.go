// Package mqtt turns generated credentials into ready-to-dial paho client
// options. Connecting, publishing and credential renewal stay with the
// caller.
package mqtt

import (
	"crypto/tls"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/iot-sas-sdk/pkg/auth"
	"github.com/iot-sas-sdk/pkg/config"
	tlsutil "github.com/iot-sas-sdk/pkg/tls"
)

// BrokerURL derives the broker endpoint for a credential's transport hint.
// A port of 0 selects the endpoint's default: 443 for the websocket path,
// 8883 for direct MQTT.
func BrokerURL(cred *auth.Credential, host string, port int) (string, error) {
	switch cred.Transport {
	case auth.TransportWebSocket:
		if port == 0 {
			port = 443
		}
		return fmt.Sprintf("wss://%s:%d%s", host, port, cred.Transport), nil
	case auth.TransportMQTT:
		if port == 0 {
			port = 8883
		}
		return fmt.Sprintf("ssl://%s:%d", host, port), nil
	default:
		return "", fmt.Errorf("unsupported transport %q", cred.Transport)
	}
}

// NewClientOptions assembles paho options carrying the credential. The
// caller dials with mqtt.NewClient and owns the connection lifecycle.
func NewClientOptions(cred *auth.Credential, cfg *config.Config) (*mqtt.ClientOptions, error) {
	broker, err := BrokerURL(cred, cfg.BrokerHost(), cfg.MQTT.Port)
	if err != nil {
		return nil, err
	}

	certPool, err := tlsutil.LoadCACert(cfg.TLS.CACert)
	if err != nil {
		return nil, fmt.Errorf("failed to load CA certificate: %w", err)
	}
	tlsConfig := &tls.Config{
		RootCAs:            certPool,
		ServerName:         cfg.TLS.ServerName,
		InsecureSkipVerify: cfg.TLS.SkipVerify,
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(cfg.GenerateClientID())
	opts.SetUsername(cred.Username)
	opts.SetPassword(cred.Password)
	opts.SetKeepAlive(cfg.MQTT.KeepAlive)
	opts.SetCleanSession(cfg.MQTT.CleanSession)
	opts.SetTLSConfig(tlsConfig)
	// The reconnect loop would replay a password that has since expired;
	// callers mint a fresh credential and dial again instead.
	opts.SetAutoReconnect(false)
	opts.SetConnectRetry(false)

	return opts, nil
}
