package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	sent "github.com/revelaction/curiam/sentence"
	"github.com/revelaction/curiam/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type DocStore struct {
	pool *sqlitex.Pool

	// ImportId is recorded with every document written.
	ImportId string
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List() ([]sent.Document, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []sent.Document
	err = sqlitex.Execute(conn, "SELECT id, title, labels, checksum FROM docs ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			docs = append(docs, scanDoc(stmt))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func scanDoc(stmt *sqlite.Stmt) sent.Document {
	doc := sent.Document{
		Id:       stmt.ColumnInt(0),
		Title:    stmt.ColumnText(1),
		Checksum: stmt.ColumnText(3),
	}
	if labels := stmt.ColumnText(2); labels != "" {
		doc.Labels = strings.Split(labels, ",")
	}
	return doc
}

func (h *DocStore) Read(id int) (sent.Document, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Document{}, err
	}
	defer h.pool.Put(conn)

	var doc sent.Document
	found := false
	err = sqlitex.Execute(conn, "SELECT id, title, labels, checksum FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc = scanDoc(stmt)
			return nil
		},
	})
	if err != nil {
		return sent.Document{}, err
	}
	if !found {
		return sent.Document{}, fmt.Errorf("%w: %d", storage.ErrNotFound, id)
	}

	err = sqlitex.Execute(conn, "SELECT data FROM sentences WHERE doc_id = ? ORDER BY position", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var s sent.Sentence
			if err := json.Unmarshal([]byte(stmt.ColumnText(0)), &s); err != nil {
				return err
			}
			doc.Append(s)
			return nil
		},
	})
	if err != nil {
		return sent.Document{}, err
	}

	return doc, nil
}

func (h *DocStore) FindSentences(categories []string, annotator string, after storage.Cursor, limit int, onResult func(storage.SentenceResult) error) (storage.Cursor, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return after, err
	}
	defer h.pool.Put(conn)

	// INTERSECT keeps the sentence_rowids having ALL categories and makes
	// them unique.
	var queryBuilder strings.Builder
	var args []interface{}
	if len(categories) == 0 {
		queryBuilder.WriteString("SELECT rowid FROM sentences WHERE rowid > ?")
		args = append(args, int64(after))
	}
	for i, category := range categories {
		if i > 0 {
			queryBuilder.WriteString(" INTERSECT ")
		}
		queryBuilder.WriteString("SELECT sentence_rowid FROM sentence_categories WHERE category = ? AND annotator = ? AND sentence_rowid > ?")
		args = append(args, category, annotator, int64(after))
	}
	queryBuilder.WriteString(" ORDER BY 1")
	if limit > 0 {
		queryBuilder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	var rowIDs []int64
	err = sqlitex.Execute(conn, queryBuilder.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rowIDs = append(rowIDs, stmt.ColumnInt64(0))
			return nil
		},
	})
	if err != nil {
		return after, err
	}

	if len(rowIDs) == 0 {
		return after, nil
	}

	idStrings := make([]string, len(rowIDs))
	for i, id := range rowIDs {
		idStrings[i] = strconv.FormatInt(id, 10)
	}

	query := fmt.Sprintf(`SELECT s.rowid, s.doc_id, d.title, s.data
		FROM sentences s JOIN docs d ON d.id = s.doc_id
		WHERE s.rowid IN (%s) ORDER BY s.rowid`, strings.Join(idStrings, ","))

	newCursor := after
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rowID := stmt.ColumnInt64(0)
			if storage.Cursor(rowID) > newCursor {
				newCursor = storage.Cursor(rowID)
			}

			res := storage.SentenceResult{
				DocId:    stmt.ColumnInt(1),
				DocTitle: stmt.ColumnText(2),
			}
			if err := json.Unmarshal([]byte(stmt.ColumnText(3)), &res.Sentence); err != nil {
				return err
			}
			return onResult(res)
		},
	})
	if err != nil {
		return newCursor, err
	}

	return newCursor, nil
}

func (h *DocStore) Categories(pattern string) ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	query := "SELECT DISTINCT category FROM sentence_categories ORDER BY category"
	var args []interface{}
	if pattern != "" {
		query = "SELECT DISTINCT category FROM sentence_categories WHERE instr(category, ?) > 0 ORDER BY category"
		args = append(args, pattern)
	}

	var categories []string
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			categories = append(categories, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (h *DocStore) Write(doc sent.Document) (docID int, err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	if doc.Checksum != "" {
		exists := false
		err = sqlitex.Execute(conn, "SELECT 1 FROM docs WHERE checksum = ?", &sqlitex.ExecOptions{
			Args: []interface{}{doc.Checksum},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				exists = true
				return nil
			},
		})
		if err != nil {
			return 0, err
		}
		if exists {
			return 0, fmt.Errorf("%w: %s", storage.ErrExists, doc.Title)
		}
	}

	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels, checksum, import_id) VALUES (?, ?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Title, strings.Join(doc.Labels, ","), doc.Checksum, h.ImportId},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert doc: %w", err)
	}
	docID = int(conn.LastInsertRowID())

	for i, s := range doc.Sentences {
		data, err := json.Marshal(s)
		if err != nil {
			return 0, err
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, position, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{docID, i, string(data)},
		})
		if err != nil {
			return 0, fmt.Errorf("failed to insert sentence: %w", err)
		}
		sentRowID := conn.LastInsertRowID()

		if err := insertCategories(conn, s, sentRowID); err != nil {
			return 0, err
		}
	}

	return docID, nil
}

// insertCategories indexes the unique (category, annotator) pairs of s.
func insertCategories(conn *sqlite.Conn, s sent.Sentence, rowID int64) error {
	type key struct{ category, annotator string }

	seen := map[key]bool{}
	for _, tok := range s.Tokens {
		for _, ta := range tok.Annotations {
			k := key{ta.Category, ta.Annotator}
			if seen[k] {
				continue
			}
			seen[k] = true

			err := sqlitex.Execute(conn, "INSERT INTO sentence_categories (category, annotator, sentence_rowid) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
				Args: []interface{}{ta.Category, ta.Annotator, rowID},
			})
			if err != nil {
				return fmt.Errorf("failed to insert category: %w", err)
			}
		}
	}
	return nil
}
