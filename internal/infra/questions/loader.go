package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"imageguess-engine/internal/domain"
)

// Loader fetches the materialized question collection from a backing source.
type Loader interface {
	Load(ctx context.Context) ([]domain.Question, error)
}

// sheetRow mirrors one row of the exported spreadsheet dump. Unknown columns
// are ignored; the four image columns fold into an ordered slice.
type sheetRow struct {
	ID         string `json:"id"`
	Language   string `json:"language"`
	Group      string `json:"group"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Answer     string `json:"answer"`
	Img1       string `json:"img1"`
	Img2       string `json:"img2"`
	Img3       string `json:"img3"`
	Img4       string `json:"img4"`
}

// FileLoader reads a JSON array of sheet rows from disk.
type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (l *FileLoader) Load(_ context.Context) ([]domain.Question, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	var rows []sheetRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}

	out := make([]domain.Question, 0, len(rows))
	for i, row := range rows {
		out = append(out, fromRow(i, row))
	}
	return out, nil
}

func fromRow(i int, row sheetRow) domain.Question {
	id := strings.TrimSpace(row.ID)
	if id == "" {
		id = fmt.Sprintf("q-%d", i+1)
	}

	difficulty := domain.Difficulty(strings.ToLower(strings.TrimSpace(row.Difficulty)))
	if !difficulty.Valid() {
		difficulty = domain.DifficultyNormal
	}

	var images []string
	for _, img := range []string{row.Img1, row.Img2, row.Img3, row.Img4} {
		if img != "" {
			images = append(images, img)
		}
	}

	return domain.Question{
		ID:         id,
		Language:   row.Language,
		Group:      row.Group,
		Category:   row.Category,
		Difficulty: difficulty,
		Answer:     row.Answer,
		Images:     images,
	}
}

// StaticLoader serves a fixed collection (useful for tests and demos).
type StaticLoader struct {
	questions []domain.Question
}

func NewStaticLoader(questions []domain.Question) *StaticLoader {
	return &StaticLoader{questions: questions}
}

func (l *StaticLoader) Load(_ context.Context) ([]domain.Question, error) {
	out := make([]domain.Question, len(l.questions))
	copy(out, l.questions)
	return out, nil
}
