package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// FeedsFile is the YAML feeds file structure
// feeds:
//   - https://...
type FeedsFile struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeedsFile reads the feed URL list from a YAML file
func LoadFeedsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ff FeedsFile
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&ff); err != nil {
		return nil, err
	}
	return ff.Feeds, nil
}
