package sync

import "strings"

// WooCommerce REST defaults; overridable per setting.
const (
	DefaultHealthEndpoint     = "/wp-json/wc/v3/system_status"
	DefaultProductsEndpoint   = "/wp-json/wc/v3/products"
	DefaultCategoriesEndpoint = "/wp-json/wc/v3/products/categories"
)

// Config holds the remote-endpoint credentials and paths for one sync run.
// It is loaded from the settings store once and passed in explicitly;
// nothing in the pipeline reads settings ambiently.
type Config struct {
	BaseURL            string `mapstructure:"base_url"`
	ConsumerKey        string `mapstructure:"consumer_key"`
	ConsumerSecret     string `mapstructure:"consumer_secret"`
	HealthEndpoint     string `mapstructure:"health_endpoint"`
	ProductsEndpoint   string `mapstructure:"products_endpoint"`
	CategoriesEndpoint string `mapstructure:"categories_endpoint"`
}

// Complete reports whether every remote call prerequisite is present.
func (c Config) Complete() bool {
	return c.BaseURL != "" && c.ConsumerKey != "" && c.ConsumerSecret != ""
}

// Normalize trims the base URL's trailing slash and applies endpoint
// defaults with a leading slash.
func (c *Config) Normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.ConsumerKey = strings.TrimSpace(c.ConsumerKey)
	c.ConsumerSecret = strings.TrimSpace(c.ConsumerSecret)
	c.HealthEndpoint = normalizeEndpoint(c.HealthEndpoint, DefaultHealthEndpoint)
	c.ProductsEndpoint = normalizeEndpoint(c.ProductsEndpoint, DefaultProductsEndpoint)
	c.CategoriesEndpoint = normalizeEndpoint(c.CategoriesEndpoint, DefaultCategoriesEndpoint)
}

func normalizeEndpoint(ep, def string) string {
	ep = strings.TrimSpace(ep)
	if ep == "" {
		ep = def
	}
	if !strings.HasPrefix(ep, "/") {
		ep = "/" + ep
	}
	if ep != "/" {
		ep = strings.TrimRight(ep, "/")
	}
	return ep
}
