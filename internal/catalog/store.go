// Package catalog persists parsed box code files in the project's SQLite
// database so instructions can be searched across a source tree.
package catalog

import (
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/boxcode/boxutil/internal/boxcode"
	"github.com/boxcode/boxutil/internal/db"
)

// File is a catalogued box code file.
type File struct {
	ID               string
	Path             string
	ContentHash      string
	InstructionCount int
	IndexedAt        time.Time
}

// Occurrence is one instruction found in a catalogued file.
type Occurrence struct {
	Path     string
	Position int // 1-based
	boxcode.Instruction
}

// IndexStatus reports what Index did with a file.
type IndexStatus int

const (
	StatusUnchanged IndexStatus = iota
	StatusAdded
	StatusModified
)

// Store provides read/write access to the catalog database.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given DB.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// HashContent returns the hex SHA-256 of text.
func HashContent(text string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
}

// Index parses text and stores it under path, skipping files whose content
// hash has not changed since they were last indexed.
func (s *Store) Index(path, text string) (IndexStatus, error) {
	hash := HashContent(text)

	status := StatusAdded
	existing, err := s.GetFileByPath(path)
	switch {
	case err == nil && existing.ContentHash == hash:
		return StatusUnchanged, nil
	case err == nil:
		status = StatusModified
	case !errors.Is(err, sql.ErrNoRows):
		return 0, err
	}

	ins := boxcode.Parse(text)
	id, err := s.UpsertFile(File{Path: path, ContentHash: hash, InstructionCount: len(ins)})
	if err != nil {
		return 0, fmt.Errorf("catalog: upsert %s: %w", path, err)
	}
	if err := s.ReplaceInstructions(id, ins); err != nil {
		return 0, err
	}
	return status, nil
}

// ---- Files ----

// UpsertFile inserts or updates a file record. Returns the file ID.
func (s *Store) UpsertFile(f File) (string, error) {
	var id string
	err := s.db.Conn().QueryRow(`
		INSERT INTO files (id, path, content_hash, instruction_count)
		VALUES (lower(hex(randomblob(16))), ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
		    content_hash      = excluded.content_hash,
		    instruction_count = excluded.instruction_count,
		    indexed_at        = CURRENT_TIMESTAMP
		RETURNING id`,
		f.Path, f.ContentHash, f.InstructionCount,
	).Scan(&id)
	return id, err
}

// GetFileByPath returns the file record for the given path, or sql.ErrNoRows.
func (s *Store) GetFileByPath(path string) (File, error) {
	var f File
	err := s.db.Conn().QueryRow(
		`SELECT id, path, content_hash, instruction_count, indexed_at FROM files WHERE path = ?`, path,
	).Scan(&f.ID, &f.Path, &f.ContentHash, &f.InstructionCount, &f.IndexedAt)
	return f, err
}

// ListFiles returns every catalogued file ordered by path.
func (s *Store) ListFiles() ([]File, error) {
	rows, err := s.db.Conn().Query(
		`SELECT id, path, content_hash, instruction_count, indexed_at FROM files ORDER BY path`,
	)
	if err != nil {
		return nil, fmt.Errorf("catalog: list files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []File
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.ID, &f.Path, &f.ContentHash, &f.InstructionCount, &f.IndexedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// DeleteFile removes a file and, by cascade, its instructions.
func (s *Store) DeleteFile(id string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM files WHERE id = ?`, id)
	return err
}

// CountFiles returns the number of catalogued files.
func (s *Store) CountFiles() (int, error) {
	var n int
	err := s.db.Conn().QueryRow(`SELECT COUNT(*) FROM files`).Scan(&n)
	return n, err
}

// ---- Instructions ----

// ReplaceInstructions swaps the stored instructions of a file for ins.
func (s *Store) ReplaceInstructions(fileID string, ins []boxcode.Instruction) error {
	tx, err := s.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM instructions WHERE file_id = ?`, fileID); err != nil {
		return fmt.Errorf("catalog: clear instructions: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO instructions (file_id, position, command, args) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("catalog: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, in := range ins {
		args, err := encodeArgs(in.Args)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(fileID, i+1, in.Command, args); err != nil {
			return fmt.Errorf("catalog: insert instruction %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

// Instructions returns the stored instructions of a file in source order.
func (s *Store) Instructions(fileID string) ([]boxcode.Instruction, error) {
	rows, err := s.db.Conn().Query(
		`SELECT command, args FROM instructions WHERE file_id = ? ORDER BY position`, fileID,
	)
	if err != nil {
		return nil, fmt.Errorf("catalog: list instructions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []boxcode.Instruction
	for rows.Next() {
		var in boxcode.Instruction
		var args string
		if err := rows.Scan(&in.Command, &args); err != nil {
			return nil, err
		}
		if in.Args, err = decodeArgs(args); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// FindByCommand returns every occurrence of command, ordered by path then
// position.
func (s *Store) FindByCommand(command string) ([]Occurrence, error) {
	rows, err := s.db.Conn().Query(`
		SELECT f.path, i.position, i.command, i.args
		FROM instructions i JOIN files f ON f.id = i.file_id
		WHERE i.command = ?
		ORDER BY f.path, i.position`, command)
	if err != nil {
		return nil, fmt.Errorf("catalog: find %q: %w", command, err)
	}
	defer func() { _ = rows.Close() }()

	var out []Occurrence
	for rows.Next() {
		var o Occurrence
		var args string
		if err := rows.Scan(&o.Path, &o.Position, &o.Command, &args); err != nil {
			return nil, err
		}
		if o.Args, err = decodeArgs(args); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// CommandCounts returns how many times each command appears across the catalog.
func (s *Store) CommandCounts() (map[string]int, error) {
	rows, err := s.db.Conn().Query(`SELECT command, COUNT(*) FROM instructions GROUP BY command`)
	if err != nil {
		return nil, fmt.Errorf("catalog: count commands: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var cmd string
		var n int
		if err := rows.Scan(&cmd, &n); err != nil {
			return nil, err
		}
		counts[cmd] = n
	}
	return counts, rows.Err()
}

func encodeArgs(args []string) (string, error) {
	if args == nil {
		return "[]", nil
	}
	b, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("catalog: encode args: %w", err)
	}
	return string(b), nil
}

// decodeArgs restores nil for an empty list to match boxcode.Parse.
func decodeArgs(s string) ([]string, error) {
	var args []string
	if err := json.Unmarshal([]byte(s), &args); err != nil {
		return nil, fmt.Errorf("catalog: decode args: %w", err)
	}
	if len(args) == 0 {
		return nil, nil
	}
	return args, nil
}
