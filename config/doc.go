// Package config resolves pipeline configuration hierarchically:
// defaults < global (~/.config/projinit/config.yaml) < local (.projinit.yaml
// in the git root) < environment (PROJINIT_*) < flags.
//
// Values are flat string key-value pairs; callers parse types as needed.
package config
