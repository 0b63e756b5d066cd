package shader

import (
	"fmt"
	"sort"
	"strings"
)

// EmbedDefs inserts preprocessor #define directives into GLSL source.
//
// Definitions are placed directly after the #version directive, which
// must be the first statement in GLSL sources. Keys are emitted in sorted
// order so generated sources are deterministic. A nil value for a key
// emits a bare `#define KEY`.
func EmbedDefs(src string, defs map[string]interface{}) string {
	if len(defs) == 0 {
		return src
	}

	keys := make([]string, 0, len(defs))
	for k := range defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		if defs[k] == nil {
			fmt.Fprintf(&b, "#define %s\n", k)
		} else {
			fmt.Fprintf(&b, "#define %s %v\n", k, defs[k])
		}
	}
	block := b.String()

	lines := strings.SplitAfter(src, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#version") {
			lines[i] = line + block
			return strings.Join(lines, "")
		}
	}

	// No #version directive, prepend.
	return block + src
}
