package monit

import "strings"

// splitLines splits on \n and \r\n. A trailing newline does not produce an
// empty final line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// runeWindow returns runes[from:to] clamped to the string, to < 0 meaning the end
func runeWindow(s string, from, to int) string {
	runes := []rune(s)
	if to < 0 || to > len(runes) {
		to = len(runes)
	}
	if from > to {
		return ""
	}
	return string(runes[from:to])
}
