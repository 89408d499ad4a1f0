// Package frontmatter splits and rebuilds YAML front matter in markdown
// documents. Front matter is the leading block delimited by `---` lines.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-mdslides/internal/yamlutil"
)

// ErrUnclosed indicates an opening delimiter without a closing one.
var ErrUnclosed = errors.New("front matter: missing closing delimiter")

const delimiter = "---"

// Split separates YAML front matter from the markdown body.
//
// If the document does not start with a `---` line, had is false and body is
// the full input. The returned meta excludes the delimiter lines. Input is
// expected to use LF line endings (the pipeline normalizes before parsing).
func Split(content string) (meta, body string, had bool, err error) {
	if !strings.HasPrefix(content, delimiter+"\n") && content != delimiter {
		return "", content, false, nil
	}

	rest := strings.TrimPrefix(content, delimiter+"\n")

	// Empty front matter: delimiters on consecutive lines.
	if strings.HasPrefix(rest, delimiter+"\n") {
		return "", strings.TrimPrefix(rest, delimiter+"\n"), true, nil
	}
	if rest == delimiter {
		return "", "", true, nil
	}

	idx := strings.Index(rest, "\n"+delimiter+"\n")
	if idx < 0 {
		if strings.HasSuffix(rest, "\n"+delimiter) {
			return rest[:len(rest)-len("\n"+delimiter)], "", true, nil
		}
		return "", "", false, ErrUnclosed
	}

	return rest[:idx], rest[idx+len("\n"+delimiter+"\n"):], true, nil
}

// Parse decodes raw front matter (without delimiters) into a generic map.
// Empty input yields an empty map.
func Parse(meta string) (map[string]any, error) {
	m := map[string]any{}
	if strings.TrimSpace(meta) == "" {
		return m, nil
	}
	if err := yamlutil.Unmarshal([]byte(meta), &m); err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}
	return m, nil
}

// Decode unmarshals raw front matter into a typed destination.
// Unknown keys are tolerated: lecture sources carry course-specific fields.
func Decode(meta string, v any) error {
	if strings.TrimSpace(meta) == "" {
		return nil
	}
	if err := yamlutil.Unmarshal([]byte(meta), v); err != nil {
		return fmt.Errorf("decoding front matter: %w", err)
	}
	return nil
}

// Compose prepends a YAML front matter block (marshalled from v) to body.
// A nil v returns body unchanged.
func Compose(v any, body string) (string, error) {
	if v == nil {
		return body, nil
	}
	data, err := yamlutil.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("composing front matter: %w", err)
	}

	var b strings.Builder
	b.Grow(len(data) + len(body) + 2*len(delimiter) + 3)
	b.WriteString(delimiter)
	b.WriteByte('\n')
	b.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString(delimiter)
	b.WriteByte('\n')
	b.WriteString(body)
	return b.String(), nil
}
