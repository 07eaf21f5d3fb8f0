// package formatter provides functions to export match and discovery data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/duet/internal/models"
	"github.com/desertthunder/duet/internal/shared"
)

// MatchesToCSV converts a match list to CSV with columns: ID, User1, User2, Score, CreatedAt
func MatchesToCSV(matches []models.Match) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "User1", "User2", "Score", "CreatedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, match := range matches {
		score := ""
		if match.CompatibilityScore != nil {
			score = strconv.FormatFloat(*match.CompatibilityScore, 'f', 1, 64)
		}
		record := []string{match.ID, match.User1ID, match.User2ID, score, match.CreatedAt}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// MatchesToMarkdown converts a match list to a Markdown table.
func MatchesToMarkdown(matches []models.Match, currentUserID string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Matches\n\n")
	buf.WriteString(fmt.Sprintf("**Total**: %d\n\n", len(matches)))

	buf.WriteString("| # | Matched With | Score | Since |\n")
	buf.WriteString("|---|--------------|-------|-------|\n")
	for i, match := range matches {
		score := "-"
		if match.CompatibilityScore != nil {
			score = fmt.Sprintf("%.0f%%", *match.CompatibilityScore)
		}
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", i+1, match.OtherUserID(currentUserID), score, match.CreatedAt))
	}

	return buf.Bytes(), nil
}

// ProfilesToText converts a discovery candidate list to plain text.
func ProfilesToText(profiles []models.UserProfile) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Discovery feed: %d profiles\n\n", len(profiles)))

	for i, profile := range profiles {
		buf.WriteString(fmt.Sprintf("%d. %s", i+1, profile.Name))
		if profile.Age > 0 {
			buf.WriteString(fmt.Sprintf(", %d", profile.Age))
		}
		buf.WriteString(fmt.Sprintf(" - %.0f%% compatible\n", profile.CompatibilityScore))

		if len(profile.CommonArtists) > 0 {
			buf.WriteString(fmt.Sprintf("   In common: %s\n", strings.Join(profile.CommonArtists, ", ")))
		} else if len(profile.TopArtists) > 0 {
			buf.WriteString(fmt.Sprintf("   Top artists: %s\n", strings.Join(profile.TopArtists, ", ")))
		}
	}

	return buf.Bytes(), nil
}

// MatchesToJSON generates a pretty-printed JSON representation of a match list.
func MatchesToJSON(matches []models.Match) ([]byte, error) {
	return shared.MarshalJSON(matches, true)
}

// WriteExport renders matches in the requested format ("csv", "markdown",
// "json") and writes the result to path.
func WriteExport(matches []models.Match, currentUserID, format, path string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case "csv":
		data, err = MatchesToCSV(matches)
	case "markdown", "md":
		data, err = MatchesToMarkdown(matches, currentUserID)
	case "json", "":
		data, err = MatchesToJSON(matches)
	default:
		return fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
