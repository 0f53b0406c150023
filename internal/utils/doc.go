// Package utils exposes reusable helpers consumed by the reapclone commands.
//
// ConfigurationLoader merges embedded defaults, configuration files, and
// environment variables through Viper. LoggerFactory builds zap loggers in
// structured or console form. FlushingWriter keeps per-repository outcome
// lines visible as soon as they are written.
package utils
