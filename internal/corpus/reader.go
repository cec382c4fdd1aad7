package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const tokenFieldCount = 4

// ReadTokens loads the full token stream from a tab-separated file. Blank
// lines and lines starting with '#' are skipped. Every other line must carry
// exactly four fields: document_id, surface_form, lemma, part_of_speech.
func ReadTokens(path string) ([]Token, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tokens: %w", err)
	}
	defer file.Close()

	tokens, err := ParseTokens(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tokens, nil
}

// ParseTokens decodes the tab-separated token stream from r.
func ParseTokens(r io.Reader) ([]Token, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	tokens := make([]Token, 0, 1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != tokenFieldCount {
			return nil, fmt.Errorf("line %d: expected %d tab-separated fields, got %d", lineNo, tokenFieldCount, len(fields))
		}
		docID := strings.TrimSpace(fields[0])
		if docID == "" {
			return nil, fmt.Errorf("line %d: empty document id", lineNo)
		}
		tokens = append(tokens, Token{
			DocID:        docID,
			Surface:      fields[1],
			Lemma:        fields[2],
			PartOfSpeech: strings.TrimSpace(fields[3]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan tokens: %w", err)
	}
	return tokens, nil
}
