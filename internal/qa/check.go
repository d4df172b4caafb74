package qa

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arupbarman82/ft-chromebook-app/internal/links"
	"github.com/arupbarman82/ft-chromebook-app/internal/models"
)

// TitleLabels are the three option labels that must appear verbatim
var TitleLabels = []string{
	"Option 1 (Highest SEO Reach)",
	"Option 2 (Parent High-Intent)",
	"Option 3 (Authority Explainer)",
}

// Title length bounds, inclusive
const (
	minTitleLen = 60
	maxTitleLen = 75
)

// maxTagsLen is the maximum length of the trailing tags line
const maxTagsLen = 500

// maxTimestampLines is the maximum number of Education Problems lines
const maxTimestampLines = 8

// timestampLineRe matches a leading MM:SS timestamp followed by text
var timestampLineRe = regexp.MustCompile(`^(\d{2}:\d{2})\s+.+`)

// Check statically analyzes generated metadata text against the policy
// rules and returns one violation description per breach. Deterministic and
// side-effect free; violations follow the rule-check order, not line order.
func Check(output, linkMode string, validated []links.ValidatedLink) []string {
	issues := []string{}
	lines := strings.Split(output, "\n")

	issues = append(issues, checkDashes(output)...)
	issues = append(issues, checkTitleLabels(output)...)
	issues = append(issues, checkTitleLengths(lines)...)
	issues = append(issues, checkWatchNext(lines, linkMode, validated)...)
	issues = append(issues, checkTagsLine(lines)...)
	issues = append(issues, checkTimestamps(lines)...)

	return issues
}

// checkDashes flags any em dash or en dash in the text
func checkDashes(output string) []string {
	if strings.Contains(output, "—") || strings.Contains(output, "–") {
		return []string{"Contains an em dash/en dash (—/–)."}
	}
	return nil
}

// checkTitleLabels requires each option label to be present verbatim
func checkTitleLabels(output string) []string {
	var issues []string
	for _, label := range TitleLabels {
		if !strings.Contains(output, label) {
			issues = append(issues, fmt.Sprintf("Missing title label: %s", label))
		}
	}
	return issues
}

// checkTitleLengths treats the next non-blank line after each present label
// as the title text and bounds its length to 60-75 characters inclusive
func checkTitleLengths(lines []string) []string {
	var issues []string
	for _, label := range TitleLabels {
		idx := -1
		for i, line := range lines {
			if strings.TrimSpace(line) == label {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}

		j := idx + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		if j >= len(lines) {
			issues = append(issues, fmt.Sprintf("No title text found after %s", label))
			continue
		}

		title := strings.TrimSpace(lines[j])
		if n := len([]rune(title)); n < minTitleLen || n > maxTitleLen {
			issues = append(issues, fmt.Sprintf("Title length %d after %s (must be 60–75).", n, label))
		}
	}
	return issues
}

// checkWatchNext flags a Watch Next section that the link mode does not
// justify, or one kept despite zero usable links
func checkWatchNext(lines []string, linkMode string, validated []links.ValidatedLink) []string {
	hasWatchNext := false
	for _, line := range lines {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "watch next") {
			hasWatchNext = true
			break
		}
	}
	if !hasWatchNext {
		return nil
	}

	var issues []string
	if linkMode != models.LinkModeProvided {
		issues = append(issues, "Watch Next present but links were not provided.")
	}
	if linkMode == models.LinkModeProvided && links.CountOK(validated) == 0 {
		issues = append(issues, "Watch Next present but no valid links remained.")
	}
	return issues
}

// checkTagsLine treats the last non-blank line as the tags line: it must
// contain a comma and fit in 500 characters
func checkTagsLine(lines []string) []string {
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		if trimmed := strings.TrimSpace(lines[i]); trimmed != "" {
			last = trimmed
			break
		}
	}
	if last == "" {
		return nil
	}

	if !strings.Contains(last, ",") {
		return []string{"Tags line not detected (expected one comma-separated line at the end)."}
	}
	if n := len([]rune(last)); n > maxTagsLen {
		return []string{fmt.Sprintf("Tags line is %d chars (must be <= 500).", n)}
	}
	return nil
}

// checkTimestamps collects MM:SS lines after the first "Type" line and
// requires a strictly increasing sequence of at most 8 entries
func checkTimestamps(lines []string) []string {
	typeIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "type") {
			typeIdx = i
			break
		}
	}
	if typeIdx < 0 {
		return nil
	}

	var stamps []string
	for _, line := range lines[typeIdx+1:] {
		if m := timestampLineRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			stamps = append(stamps, m[1])
		}
	}
	if len(stamps) == 0 {
		return nil
	}

	var issues []string
	secs := make([]int, len(stamps))
	for i, s := range stamps {
		secs[i] = mmssToSeconds(s)
	}
	for i := 0; i < len(secs)-1; i++ {
		if secs[i] >= secs[i+1] {
			issues = append(issues, "Education Problems timestamps are not strictly increasing or contain duplicates.")
			break
		}
	}
	if len(stamps) > maxTimestampLines {
		issues = append(issues, fmt.Sprintf("Education Problems has %d lines (must be up to 8 when justified).", len(stamps)))
	}
	return issues
}

// mmssToSeconds converts an MM:SS stamp to a second count
func mmssToSeconds(stamp string) int {
	parts := strings.SplitN(stamp, ":", 2)
	m, _ := strconv.Atoi(parts[0])
	s, _ := strconv.Atoi(parts[1])
	return m*60 + s
}
