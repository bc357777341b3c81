package questions

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"imageguess-engine/internal/domain"
)

func writeQuestionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestFileLoaderParsesSheetRows(t *testing.T) {
	path := writeQuestionsFile(t, `[
		{"id": "p-1", "language": "zh", "group": "bible", "category": "person",
		 "difficulty": "HARD ", "answer": "moses",
		 "img1": "a.png", "img2": "", "img3": "c.png", "img4": ""},
		{"language": "th", "group": "other", "category": "food",
		 "difficulty": "impossible", "answer": "pad thai",
		 "img1": "d.png", "notes": "ignored column"}
	]`)

	questions, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	first := questions[0]
	if first.ID != "p-1" || first.Difficulty != domain.DifficultyHard {
		t.Fatalf("unexpected first question: %+v", first)
	}
	if len(first.Images) != 2 || first.Images[0] != "a.png" || first.Images[1] != "c.png" {
		t.Fatalf("image columns not folded in order: %v", first.Images)
	}

	second := questions[1]
	if second.ID != "q-2" {
		t.Fatalf("expected generated id q-2, got %q", second.ID)
	}
	if second.Difficulty != domain.DifficultyNormal {
		t.Fatalf("unknown difficulty should fall back to normal, got %s", second.Difficulty)
	}
	if second.Answer != "pad thai" || len(second.Images) != 1 {
		t.Fatalf("unexpected second question: %+v", second)
	}
}

func TestFileLoaderReportsMissingFile(t *testing.T) {
	loader := NewFileLoader(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := loader.Load(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileLoaderReportsMalformedJSON(t *testing.T) {
	path := writeQuestionsFile(t, `{"not": "an array"}`)
	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestStaticLoaderReturnsCopy(t *testing.T) {
	source := []domain.Question{{ID: "q-1", Difficulty: domain.DifficultyEasy}}
	loader := NewStaticLoader(source)

	got, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	got[0].ID = "mutated"

	again, _ := loader.Load(context.Background())
	if again[0].ID != "q-1" {
		t.Fatal("loader handed out its backing slice")
	}
}
