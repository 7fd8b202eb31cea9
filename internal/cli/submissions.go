package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/terraincognita07/parentsphere/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var ErrUnknownFormat = errors.New("unknown output format")

type SubmissionLister interface {
	List(limit int) ([]models.Submission, error)
}

type SubmissionFinder interface {
	Find(publicID string) (models.Submission, error)
}

func RunListSubmissionsCommand(w io.Writer, submissions SubmissionLister, limit int, format string) error {
	format, err := normalizeFormat(format)
	if err != nil {
		return err
	}

	rows, err := submissions.List(limit)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatYAML:
		return writeYAML(w, rows)
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No submissions yet.")
		return err
	}
	_, err = io.WriteString(w, renderSubmissionTable(rows))
	return err
}

func RunShowSubmissionCommand(w io.Writer, submissions SubmissionFinder, publicID string, format string) error {
	format, err := normalizeFormat(format)
	if err != nil {
		return err
	}

	submission, err := submissions.Find(publicID)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, submission)
	default:
		return writeYAML(w, submission)
	}
}

func normalizeFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	switch format {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return format, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q (want table, json or yaml)", ErrUnknownFormat, raw)
	}
}

func renderSubmissionTable(rows []models.Submission) string {
	data := make([][]string, 0, len(rows))
	for _, submission := range rows {
		data = append(data, []string{
			submission.PublicID,
			submission.CreatedAt.UTC().Format("2006-01-02 15:04"),
			submission.FullName,
			submission.ParentLevel,
			strconv.Itoa(len(submission.Babies)),
			strings.Join(submission.Concerns, ", "),
		})
	}

	t := table.New().
		Headers("ID", "CREATED", "NAME", "STAGE", "BABIES", "CONCERNS").
		Rows(data...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	return t.String() + "\n"
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return encoder.Close()
}
