// Package config loads the application configuration (otp.yml) and provides
// helpers for generating and validating the JSON config files the OTP engine
// itself reads from a router directory (build-config.json, router-config.json,
// otp-config.json).
package config
