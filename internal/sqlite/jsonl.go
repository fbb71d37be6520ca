package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// ImportResult counts the outcome of an Import.
type ImportResult struct {
	Imported int
	Skipped  int
	IDs      []int64
}

// Export writes every student to path as JSONL, ordered by id, and returns
// the number of records written. The file is replaced atomically.
func (b *Backend) Export(ctx context.Context, path string) (int, error) {
	students, err := b.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	records := make([]json.RawMessage, 0, len(students))
	for _, s := range students {
		data, err := json.Marshal(toStudentJSON(s))
		if err != nil {
			return 0, fmt.Errorf("marshaling student %d: %w", s.ID, err)
		}
		records = append(records, data)
	}

	if err := writeJSONL(path, records); err != nil {
		return 0, err
	}

	b.log.Info().Str("path", path).Int("records", len(records)).Msg("students exported")
	return len(records), nil
}

// Import reads a JSONL file and inserts each record as a new student. Ids in
// the file are ignored; names and courses are trimmed. Malformed lines and
// records that fail validation are skipped and counted.
func (b *Backend) Import(ctx context.Context, path string) (ImportResult, error) {
	var result ImportResult

	records, malformed, err := readJSONL(path)
	if err != nil {
		return result, err
	}
	result.Skipped = malformed

	err = b.withDB(ctx, func(db *sqlx.DB) error {
		for _, rec := range records {
			var sj studentJSON
			if err := json.Unmarshal(rec, &sj); err != nil {
				result.Skipped++
				continue
			}
			name, course := strings.TrimSpace(sj.Name), strings.TrimSpace(sj.Course)
			if types.ValidateFields(name, course, sj.Year) != nil {
				result.Skipped++
				continue
			}
			id, err := insertStudent(ctx, db, types.Student{Name: name, Course: course, Year: sj.Year})
			if err != nil {
				return err
			}
			result.IDs = append(result.IDs, id)
			result.Imported++
		}
		return nil
	})

	b.log.Info().Str("path", path).Int("imported", result.Imported).Int("skipped", result.Skipped).Err(err).Msg("students imported")
	return result, err
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage together with the number of malformed lines skipped.
func readJSONL(path string) ([]json.RawMessage, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	malformed := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			malformed++
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, malformed, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, malformed, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
