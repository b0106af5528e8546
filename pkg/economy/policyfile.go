package economy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadPolicyFile reads policy overrides from a YAML file on top of DefaultPolicy.
// Tables listed in the file replace the matching default rows; scalar keys replace defaults.
func LoadPolicyFile(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file %s: %w", path, err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes YAML overrides on top of DefaultPolicy and validates the result.
func ParsePolicy(data []byte) (Policy, error) {
	policy := DefaultPolicy()
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return Policy{}, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if err := policy.Validate(); err != nil {
		return Policy{}, err
	}
	return policy, nil
}
