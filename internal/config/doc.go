// Package config defines the application configuration structure and loads
// it from files and environment variables via viper, validating the result
// before any component sees it.
package config
