package export

import "gopkg.in/yaml.v3"

// EncodeYAML uses yaml.v3 so the node marshalers keep the type discriminator.
func EncodeYAML(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func WriteYAML(path string, v any) error {
	b, err := EncodeYAML(v)
	if err != nil {
		return err
	}
	return writeFile(path, b)
}
