package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/desertthunder/spotifyle/internal/models"
	internaltest "github.com/desertthunder/spotifyle/internal/testing"
)

func sampleExport() *GameExport {
	game := models.NewGame(strings.Repeat("AB12", 8), "pub-1", "TEAL-ACID-JAZZ-AB12AB12")
	game.SetProcessed(true)

	return &GameExport{
		Game: game,
		Stages: []StageRow{
			{
				Position: 0,
				Kind:     models.ArtistTrivia,
				Question: "They formed in ____.",
				Choices: []ChoiceRow{
					{AssetName: "Radiohead", AssetURI: "spotify:artist:a1", Correct: true},
					{AssetName: "Portishead", AssetURI: "spotify:artist:a2"},
				},
			},
			{
				Position: 1,
				Kind:     models.LockIn,
				Question: "Lock in the Track.",
				Choices: []ChoiceRow{
					{AssetName: "Karma Police", AssetURI: "spotify:track:t1", Correct: true},
					{AssetName: "Glory Box", AssetURI: "spotify:track:t2"},
				},
			},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleExport())
	if err != nil {
		t.Fatalf("failed to export CSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header plus 4 choice rows, got %d lines", len(lines))
	}
	if lines[0] != "Position,Kind,Question,Asset,URI,Correct" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Radiohead") || !strings.Contains(lines[1], "true") {
		t.Errorf("expected first row to carry the correct artist, got %s", lines[1])
	}
	if !strings.Contains(lines[2], "false") {
		t.Errorf("expected wrong choice flagged false, got %s", lines[2])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(sampleExport())
	if err != nil {
		t.Fatalf("failed to export Markdown: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"# TEAL-ACID-JAZZ-AB12AB12",
		"**Playable**: true",
		"## Stage 1 (artist_trivia)",
		"> They formed in ____.",
		"1. [x] Radiohead",
		"2. [ ] Portishead",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected markdown to contain %q", want)
		}
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(sampleExport())
	if err != nil {
		t.Fatalf("failed to export text: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "Stages: 2") {
		t.Errorf("expected stage count in header, got:\n%s", text)
	}
	if !strings.Contains(text, "1. They formed in ____.") {
		t.Errorf("expected numbered question, got:\n%s", text)
	}
	if !strings.Contains(text, "   - Karma Police") {
		t.Errorf("expected indented choice, got:\n%s", text)
	}
	if strings.Contains(text, "true") || strings.Contains(text, "[x]") {
		t.Error("expected text export to hide correctness")
	}
}

func TestToMetadataJSON(t *testing.T) {
	data, err := ToMetadataJSON(sampleExport())
	if err != nil {
		t.Fatalf("failed to generate metadata: %v", err)
	}

	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatalf("metadata is not valid JSON: %v", err)
	}
	if meta["game_code"] != strings.Repeat("AB12", 8) {
		t.Errorf("unexpected game code: %v", meta["game_code"])
	}
	if meta["stages"] != float64(2) {
		t.Errorf("expected 2 stages, got %v", meta["stages"])
	}
	if meta["processed"] != true {
		t.Errorf("expected processed game, got %v", meta["processed"])
	}
}

func TestWriteExports(t *testing.T) {
	export := sampleExport()

	t.Run("CSV With Metadata", func(t *testing.T) {
		base := t.TempDir() + "/" + export.Game.GameCode()
		result, err := WriteCSVExport(export, base)
		if err != nil {
			t.Fatalf("failed to write CSV export: %v", err)
		}
		internaltest.AssertFileExists(t, result.StagesFile)
		internaltest.AssertFileExists(t, result.MetadataFile)

		content := internaltest.MustReadFile(t, result.StagesFile)
		if !strings.Contains(content, "Karma Police") {
			t.Error("expected stage rows in the CSV file")
		}
	})

	t.Run("Markdown Directory", func(t *testing.T) {
		dir := t.TempDir() + "/" + export.Game.GameCode()
		path, err := WriteMarkdownExport(export, dir)
		if err != nil {
			t.Fatalf("failed to write Markdown export: %v", err)
		}
		if path != dir+"/README.md" {
			t.Errorf("unexpected output path %s", path)
		}
		internaltest.AssertFileExists(t, path)
	})

	t.Run("Plain Text", func(t *testing.T) {
		path, err := WriteTextExport(export, t.TempDir()+"/stages.txt")
		if err != nil {
			t.Fatalf("failed to write text export: %v", err)
		}
		content := internaltest.MustReadFile(t, path)
		if !strings.Contains(content, "Code: "+export.Game.GameCode()) {
			t.Error("expected game code in the text export")
		}
	})
}
