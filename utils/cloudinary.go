package utils

import (
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/spf13/viper"
)

// Cloudinary builds the client that hosts rendered prompt audio.
// Credentials come from CLOUDINARY_* environment variables, with
// utils/cloudinary.yaml as a file fallback. A dedicated viper instance
// keeps this isolated from the application config.
func Cloudinary() (*cloudinary.Cloudinary, error) {
	v := viper.New()
	v.SetEnvPrefix("CLOUDINARY")
	v.AutomaticEnv()

	v.SetConfigFile("utils/cloudinary.yaml")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		// Env-only deployments carry no yaml file.
		GetLogger().Debug("cloudinary config file not read: " + err.Error())
	}

	cloudName := firstNonEmpty(v.GetString("CLOUD_NAME"), v.GetString("cloudinary.cloudName"))
	apiKey := firstNonEmpty(v.GetString("API_KEY"), v.GetString("cloudinary.apiKey"))
	apiSecret := firstNonEmpty(v.GetString("API_SECRET"), v.GetString("cloudinary.apiSecret"))

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not configured")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return cld, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
