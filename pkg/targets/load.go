package targets

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Amr-9/BalanceHunter/pkg/generator"
)

// addressFile is the mapping form of a YAML target file.
type addressFile struct {
	Addresses []string `yaml:"addresses"`
}

// LoadFile reads target addresses from path. Files ending in .yaml or .yml
// hold either a list of addresses or a mapping with an addresses key;
// .db, .sqlite and .sqlite3 files are read with LoadSQLite; any other file
// holds one address per line with # comments.
func LoadFile(path string, codec generator.Codec) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		raw, err := LoadSQLite(path)
		if err != nil {
			return nil, err
		}
		return Normalize(raw, codec)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open targets: %w", err)
	}
	defer f.Close()

	var raw []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = ParseYAML(f)
	default:
		raw, err = ParseText(f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Normalize(raw, codec)
}

// ParseYAML decodes a YAML target list.
func ParseYAML(r io.Reader) ([]string, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	var list []string
	if doc := node.Content[0]; doc.Kind == yaml.MappingNode {
		var file addressFile
		if err := doc.Decode(&file); err != nil {
			return nil, err
		}
		return file.Addresses, nil
	}
	if err := node.Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}

// ParseText reads one address per line, skipping blanks and # comments.
func ParseText(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		// tolerate csv exports with the address in the first column
		if i := strings.IndexByte(line, ','); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out, scanner.Err()
}

// Normalize converts addresses to identifiers with codec and drops
// duplicates while keeping the input order.
func Normalize(addresses []string, codec generator.Codec) ([]string, error) {
	seen := make(map[string]struct{}, len(addresses))
	out := make([]string, 0, len(addresses))
	for i, address := range addresses {
		id, err := codec.ParseTarget(address)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidTarget, i+1, err)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, ErrNoTargets
	}
	return out, nil
}
