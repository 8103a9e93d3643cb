// Package config provides configuration management for Profile Store.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Storage: S3/MinIO endpoint, credentials and bucket settings
//   - Image: bucket provisioning policy and presigned URL lifetime
//   - Log: Logging level and format
//
// Configuration is loaded once at process start and passed by value into
// constructors; no package keeps global configuration state.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Bucket)
package config
