package digest

import "strings"

// TruncationMarker is appended as a trailing line whenever a diff hunk was
// cut. Downstream consumers detect truncation by substring search, so the
// literal text must stay stable.
const TruncationMarker = "(truncated)"

// TruncateDiffHunk bounds diff text to roughly maxLength characters without
// breaking it mid-line more than necessary.
//
// Text within the limit is returned unchanged. Otherwise whole lines are
// accumulated in order, stopping before the line that would push the
// cumulative length (separators included) over the limit, and the marker is
// appended. If not even the first line fits, a prefix of the first line is
// taken so the result is always bounded regardless of input structure.
func TruncateDiffHunk(diff string, maxLength int) string {
	if len(diff) <= maxLength {
		return diff
	}

	lines := strings.Split(diff, "\n")
	var kept []string
	total := 0
	for _, line := range lines {
		length := len(line)
		if len(kept) > 0 {
			length++ // joining newline
		}
		if total+length > maxLength {
			break
		}
		kept = append(kept, line)
		total += length
	}

	if len(kept) == 0 {
		if maxLength < 0 {
			maxLength = 0
		}
		return lines[0][:maxLength] + "\n" + TruncationMarker
	}

	return strings.Join(kept, "\n") + "\n" + TruncationMarker
}
