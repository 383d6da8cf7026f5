package digitalocean

import "github.com/moringa/darasa-api/config"

// SpacesConfigFrom maps the DO_SPACES_* settings
func SpacesConfigFrom(cfg *config.Config) SpacesConfig {
	return SpacesConfig{
		AccessKey: cfg.DO_SPACES_KEY,
		SecretKey: cfg.DO_SPACES_SECRET,
		Bucket:    cfg.DO_SPACES_BUCKET,
		Region:    cfg.DO_SPACES_REGION,
		Endpoint:  cfg.DO_SPACES_ENDPOINT,
		CDNURL:    cfg.DO_SPACES_CDN_URL,
	}
}
