package openapifx

type Config struct {
	Enabled bool
	// PublicHost overrides the host advertised by the OpenAPI document, e.g. behind a proxy
	PublicHost string
	// PublicPath overrides the base path advertised by the OpenAPI document
	PublicPath string
}
