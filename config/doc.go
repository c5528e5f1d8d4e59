// Package config loads a static resource-profile document describing the
// compute resources a host wants the registry to advertise through
// getResourceList, for environments without real accelerator discovery.
// It follows the "DefaultConfig, then override from a YAML file if
// present" convention common across the corpus's own config loaders.
package config
