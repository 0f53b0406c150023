// Package cli constructs the reapclone command-line interface. The root
// command clones every repository of an owner; the clone and list
// subcommands expose the same workflow and the read-only listings. It wires
// the Cobra command hierarchy to the Viper configuration loader and the zap
// logger.
package cli
