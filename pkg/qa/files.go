package qa

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/askpage/askpage/internal/models"
)

// LoadQuestions reads newline-separated questions from path, skipping blank
// lines. A missing or empty file is an error; the run aborts before any
// answering happens.
func LoadQuestions(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question file: %w", err)
	}
	defer file.Close()

	var questions []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			questions = append(questions, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("question file %s is empty", path)
	}

	return questions, nil
}

// SaveAnswers writes one response block per answer, in order.
func SaveAnswers(path string, answers []models.Answer) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create response file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, answer := range answers {
		if _, err := fmt.Fprintln(w, answer.Response); err != nil {
			return fmt.Errorf("error saving responses: %w", err)
		}
	}
	return w.Flush()
}
