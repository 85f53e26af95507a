// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads private settings that should not live in a config
// file checked into a repository. Each setting is a plain-text file in the
// secrets directory, named after its key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// EntrezEmail names the file holding the contact address sent to NCBI.
const EntrezEmail = "entrez-email"

// Keys lists the secret files get-papers reads. Other files in the
// directory are ignored.
var Keys = []string{EntrezEmail}

// Secrets maps a key from Keys to its trimmed value. Keys whose file is
// missing or blank are absent.
type Secrets map[string]string

// Or returns value when it is set and the secret for key otherwise, so
// flags and config take precedence over the secrets directory.
func (s Secrets) Or(key, value string) string {
	if value != "" {
		return value
	}
	return s[key]
}

// Names returns the loaded keys in sorted order.
func (s Secrets) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Load reads each key in Keys from dir. A missing directory or key file is
// not an error. A path that is not a directory, or a key file that exists
// but cannot be read, is.
func Load(dir string) (Secrets, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return Secrets{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("reading secrets directory %s: not a directory", dir)
	}

	s := make(Secrets)
	for _, key := range Keys {
		data, err := os.ReadFile(filepath.Join(dir, key))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading secret %s: %w", key, err)
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			s[key] = v
		}
	}
	return s, nil
}
