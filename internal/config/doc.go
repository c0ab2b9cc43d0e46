package config

// Package config loads the read-only application configuration from an
// optional .env file, an optional YAML file and environment overrides.
