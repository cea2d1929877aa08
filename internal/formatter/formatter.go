// package formatter provides functions to export game data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/spotifyle/internal/models"
	"github.com/desertthunder/spotifyle/internal/shared"
)

// ChoiceRow is one answer option resolved against its asset for display.
type ChoiceRow struct {
	AssetName string `json:"asset_name"`
	AssetURI  string `json:"asset_uri"`
	Correct   bool   `json:"correct"`
}

// StageRow is one quiz screen resolved for display, in play order.
type StageRow struct {
	Position int               `json:"position"`
	Kind     models.PuzzleKind `json:"kind"`
	Question string            `json:"question,omitempty"`
	Choices  []ChoiceRow       `json:"choices"`
}

// GameExport couples a game with its fully resolved stages.
type GameExport struct {
	Game   *models.Game
	Stages []StageRow
}

// gameMetadata is the JSON shape written alongside CSV exports.
type gameMetadata struct {
	ID        string `json:"id"`
	GameCode  string `json:"game_code"`
	Name      string `json:"name"`
	Publisher string `json:"publisher_id"`
	Processed bool   `json:"processed"`
	Stages    int    `json:"stages"`
}

// ExportToCSV converts a GameExport to CSV with one row per choice,
// columns: Position, Kind, Question, Asset, URI, Correct
func ExportToCSV(export *GameExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Kind", "Question", "Asset", "URI", "Correct"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, stage := range export.Stages {
		for _, choice := range stage.Choices {
			record := []string{
				strconv.Itoa(stage.Position),
				stage.Kind.String(),
				stage.Question,
				choice.AssetName,
				choice.AssetURI,
				strconv.FormatBool(choice.Correct),
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a GameExport to Markdown with one section per stage
func ExportToMarkdown(export *GameExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Game.Name()))
	buf.WriteString(fmt.Sprintf("**Code**: %s\n", export.Game.GameCode()))
	buf.WriteString(fmt.Sprintf("**Stages**: %d\n", len(export.Stages)))
	buf.WriteString(fmt.Sprintf("**Playable**: %t\n\n", export.Game.Processed()))

	for _, stage := range export.Stages {
		buf.WriteString(fmt.Sprintf("## Stage %d (%s)\n\n", stage.Position+1, stage.Kind))
		if stage.Question != "" {
			buf.WriteString(fmt.Sprintf("> %s\n\n", stage.Question))
		}
		for i, choice := range stage.Choices {
			marker := " "
			if choice.Correct {
				marker = "x"
			}
			buf.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, marker, choice.AssetName))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a GameExport to plain text format
func ExportToText(export *GameExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Game: %s\n", export.Game.Name()))
	buf.WriteString(fmt.Sprintf("Code: %s\n", export.Game.GameCode()))
	buf.WriteString(fmt.Sprintf("Stages: %d\n\n", len(export.Stages)))

	for _, stage := range export.Stages {
		question := stage.Question
		if question == "" {
			question = stage.Kind.String()
		}
		buf.WriteString(fmt.Sprintf("%d. %s\n", stage.Position+1, question))
		for _, choice := range stage.Choices {
			buf.WriteString(fmt.Sprintf("   - %s\n", choice.AssetName))
		}
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of game metadata (without stages)
func ToMetadataJSON(export *GameExport) ([]byte, error) {
	meta := gameMetadata{
		ID:        export.Game.ID(),
		GameCode:  export.Game.GameCode(),
		Name:      export.Game.Name(),
		Publisher: export.Game.PublisherID(),
		Processed: export.Game.Processed(),
		Stages:    len(export.Stages),
	}
	return shared.MarshalJSON(meta, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	StagesFile   string
	MetadataFile string
}

// WriteCSVExport exports a game to CSV format with accompanying metadata JSON file.
//
// Defaults to the game code as the base filename & creates {base}_stages.csv and {base}_metadata.json
func WriteCSVExport(export *GameExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = export.Game.GameCode()
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	stagesFile := baseFilepath + "_stages.csv"
	if err := os.WriteFile(stagesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		StagesFile:   stagesFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport exports a game to Markdown in a dedicated directory.
//
// Directory name defaults to the game code. Creates {dir}/README.md
func WriteMarkdownExport(export *GameExport, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = export.Game.GameCode()
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return mdFile, nil
}

// WriteTextExport exports a game to plain text format.
//
// Defaults to {code}_stages.txt as the filename.
func WriteTextExport(export *GameExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_stages.txt", export.Game.GameCode())
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
