package forge

import (
	"fmt"
	"os/exec"
	"strings"
)

// Escaper escapes an arbitrary value for safe embedding as a JSON string.
// Implementations return the full quoted JSON string literal and must fail
// loudly rather than truncate.
type Escaper interface {
	Escape(value string) (string, error)
}

// JQEscaper escapes values by piping them through `jq -R .`, the same
// delegate the downstream tooling relies on.
type JQEscaper struct {
	// Bin is the jq binary name or path. Defaults to "jq".
	Bin string
}

// Escape returns value as a quoted JSON string literal.
func (j *JQEscaper) Escape(value string) (string, error) {
	bin := j.Bin
	if bin == "" {
		bin = "jq"
	}

	cmd := exec.Command(bin, "-R", ".")
	cmd.Stdin = strings.NewReader(value)

	out, err := cmd.Output()
	if err != nil {
		return "", &EscapeFailure{Value: value, Err: err}
	}

	literal := strings.TrimSpace(string(out))
	if !strings.HasPrefix(literal, `"`) || !strings.HasSuffix(literal, `"`) || len(literal) < 2 {
		return "", &EscapeFailure{
			Value: value,
			Err:   fmt.Errorf("unexpected jq output %q", literal),
		}
	}

	return literal, nil
}
