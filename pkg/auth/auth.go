// Package auth computes shared-access-signature credentials for
// device-to-cloud endpoints. Two wire variants share one HMAC-SHA256 core:
// the legacy api-version=2020-09-30 scheme and the 2021-06-30-preview
// scheme. The package builds credentials only; connecting with them is the
// caller's business.
package auth

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Variant selects the credential scheme understood by the target endpoint.
type Variant string

const (
	// VariantLegacy produces a SharedAccessSignature password for websocket
	// endpoints speaking api-version=2020-09-30.
	VariantLegacy Variant = "legacy"
	// VariantPreview produces an av=2021-06-30-preview username with the raw
	// base64 signature as password, for MQTT endpoints.
	VariantPreview Variant = "preview"
)

// Transport hints carried on generated credentials. Consumers switch on
// these to pick a connection path.
const (
	TransportWebSocket = "/$iothub/websocket?iothub-no-client-cert=true"
	TransportMQTT      = "mqtt"
)

const (
	legacyAPIVersion  = "2020-09-30"
	previewAPIVersion = "2021-06-30-preview"
)

// Credential is a ready-to-use username/password pair plus the transport the
// target endpoint expects it on.
type Credential struct {
	Username  string
	Password  string
	Transport string
}

// Generator builds credentials. NewGenerator without options uses the real
// clock, HMAC-SHA256 signing and compat expiry arithmetic.
type Generator struct {
	signer Signer
	now    func() time.Time
	expiry ExpiryPolicy
}

// Option configures a Generator.
type Option func(*Generator)

// WithSigner replaces the HMAC-SHA256 signer.
func WithSigner(s Signer) Option {
	return func(g *Generator) { g.signer = s }
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithExpiryPolicy replaces the expiry arithmetic. See CompatExpiry and
// CorrectedExpiry.
func WithExpiryPolicy(p ExpiryPolicy) Option {
	return func(g *Generator) { g.expiry = p }
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		signer: HMACSigner{},
		now:    time.Now,
		expiry: CompatExpiry,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a credential for the given variant. An expiresInMins of 0
// selects DefaultExpiresInMins. Unknown variants return *InvalidVariantError;
// signer failures are returned unmodified. Generate never returns a partial
// credential.
func (g *Generator) Generate(variant Variant, hostname, deviceID, base64Key string, expiresInMins int) (*Credential, error) {
	if expiresInMins == 0 {
		expiresInMins = DefaultExpiresInMins
	}
	expires := g.expiry(g.now(), expiresInMins)

	switch variant {
	case VariantLegacy:
		return g.legacyCredential(hostname, deviceID, base64Key, expires)
	case VariantPreview:
		return g.previewCredential(hostname, deviceID, base64Key, expires)
	default:
		return nil, &InvalidVariantError{Variant: variant}
	}
}

func (g *Generator) legacyCredential(hostname, deviceID, base64Key string, expires int64) (*Credential, error) {
	resourceURI := fmt.Sprintf("%s/devices/%s", hostname, deviceID)

	sig, err := g.signer.Sign(fmt.Sprintf("%s\n%d", resourceURI, expires), base64Key)
	if err != nil {
		return nil, err
	}

	// Only the signature is percent-encoded; sr and se travel raw. Base64
	// output contains no space, so QueryEscape matches component encoding
	// exactly over its alphabet.
	password := fmt.Sprintf("SharedAccessSignature sr=%s&sig=%s&se=%d",
		resourceURI, url.QueryEscape(sig), expires)
	username := fmt.Sprintf("%s/%s/?api-version=%s", hostname, deviceID, legacyAPIVersion)

	return &Credential{
		Username:  username,
		Password:  password,
		Transport: TransportWebSocket,
	}, nil
}

func (g *Generator) previewCredential(hostname, deviceID, base64Key string, expires int64) (*Credential, error) {
	// The two empty fields and the trailing separator are reserved protocol
	// slots and must be present in the signed string.
	toSign := strings.Join([]string{
		hostname, deviceID, "", "", strconv.FormatInt(expires, 10), "",
	}, "\n")

	sig, err := g.signer.Sign(toSign, base64Key)
	if err != nil {
		return nil, err
	}

	// No field is percent-encoded in this variant.
	username := fmt.Sprintf("av=%s&h=%s&did=%s&am=SASb64&se=%d",
		previewAPIVersion, hostname, deviceID, expires)

	return &Credential{
		Username:  username,
		Password:  sig,
		Transport: TransportMQTT,
	}, nil
}

var defaultGenerator = NewGenerator()

// GenerateCredential builds a credential with the default generator: real
// clock, HMAC-SHA256 signing, compat expiry.
func GenerateCredential(variant Variant, hostname, deviceID, base64Key string, expiresInMins int) (*Credential, error) {
	return defaultGenerator.Generate(variant, hostname, deviceID, base64Key, expiresInMins)
}

// GenerateLegacyCredential is shorthand for GenerateCredential with
// VariantLegacy.
func GenerateLegacyCredential(hostname, deviceID, base64Key string, expiresInMins int) (*Credential, error) {
	return GenerateCredential(VariantLegacy, hostname, deviceID, base64Key, expiresInMins)
}

// GeneratePreviewCredential is shorthand for GenerateCredential with
// VariantPreview.
func GeneratePreviewCredential(hostname, deviceID, base64Key string, expiresInMins int) (*Credential, error) {
	return GenerateCredential(VariantPreview, hostname, deviceID, base64Key, expiresInMins)
}
