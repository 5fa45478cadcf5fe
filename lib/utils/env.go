package utils

import "encoding/json"

// EnvStringList decodes a flag default taken from an environment
// variable. The value must be a JSON array of strings; any other JSON
// type, or a syntax error, is a ConfigError naming the variable.
func EnvStringList(name, value string) ([]string, error) {
	var decoded any
	if err := json.Unmarshal([]byte(value), &decoded); err != nil {
		return nil, Configf("could not parse %s: %v", name, err)
	}

	items, ok := decoded.([]any)
	if !ok {
		return nil, Configf("%s must be a JSON array of strings", name)
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, Configf("%s must be a JSON array of strings", name)
		}
		list = append(list, s)
	}

	return list, nil
}
