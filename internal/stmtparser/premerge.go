package stmtparser

import "strings"

// mergeContinuations stitches wrapped descriptions back onto their
// transaction. A line starting with a date and an 8+ digit serial opens a new
// logical line; every following line that does not is space-joined to it. A
// summary line such as "Total Amount Due" closes the open transaction and
// passes through unchanged, as do lines before the first start line.
func mergeContinuations(lines []string) []string {
	merged := make([]string, 0, len(lines))
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			merged = append(merged, current.String())
			current.Reset()
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		switch {
		case serialStart.MatchString(line):
			flush()
			current.WriteString(line)
		case summaryLine.MatchString(line):
			flush()
			merged = append(merged, line)
		case current.Len() > 0:
			current.WriteString(" ")
			current.WriteString(line)
		default:
			merged = append(merged, line)
		}
	}
	flush()

	return merged
}
