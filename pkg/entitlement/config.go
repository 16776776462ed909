package entitlement

// Config holds the engine's environment-driven settings.
// Load it with the config package:
//
//	var cfg entitlement.Config
//	config.MustLoad(&cfg)
//	svc, err := entitlement.New(catalog, entitlement.WithConfig(cfg))
type Config struct {
	DefaultLanguage string `env:"ENTITLEMENT_DEFAULT_LANGUAGE" envDefault:"en"` // CTA message language when the request carries none
	UpgradeURL      string `env:"ENTITLEMENT_UPGRADE_URL" envDefault:"/billing/upgrade"`
	CatalogPath     string `env:"ENTITLEMENT_CATALOG_PATH"` // optional YAML catalog file; empty means DefaultCatalog
}
