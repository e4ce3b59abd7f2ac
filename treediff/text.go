package treediff

import (
	"strings"

	"github.com/anyform/go-anyform/form"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// replaceText renders a line diff for string replacements where both
// sides span multiple lines. Short and single-line strings read fine in
// the Edit itself.
func replaceText(a, b *form.Node) string {
	if a.Type != form.StringType || b.Type != form.StringType {
		return ""
	}
	if !strings.Contains(a.Str, "\n") || !strings.Contains(b.Str, "\n") {
		return ""
	}
	return lineDiff(a.Str, b.Str)
}

func lineDiff(from, to string) string {
	diffCfg := diffpatch.New()
	c1, c2, lineArray := diffCfg.DiffLinesToChars(from, to)
	diffs := diffCfg.DiffCharsToLines(diffCfg.DiffMain(c1, c2, false), lineArray)

	var sb strings.Builder
	for i := range diffs {
		diff := &diffs[i]
		prefix := " "
		switch diff.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(diff.Text) {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
