package converter

import (
	"fmt"

	"github.com/evgeniy-krivenko/syncnote/internal/entity"
)

// NoteDoc is the persisted shape of a note: one document per note, unique on
// the id field. Timestamps are stored as wire strings so documents read back
// byte-identical to what clients sent. The store-generated _id never leaves
// the repository.
type NoteDoc struct {
	ID        string `bson:"id"`
	Title     string `bson:"title"`
	Content   string `bson:"content"`
	CreatedAt string `bson:"created_at"`
	UpdatedAt string `bson:"updated_at"`
}

func NoteToDoc(note entity.Note) NoteDoc {
	return NoteDoc{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt.String(),
		UpdatedAt: note.UpdatedAt.String(),
	}
}

func DocToNote(doc NoteDoc) (entity.Note, error) {
	createdAt, err := entity.ParseTimestamp(doc.CreatedAt)
	if err != nil {
		return entity.Note{}, fmt.Errorf("note %s created_at: %v", doc.ID, err)
	}

	updatedAt, err := entity.ParseTimestamp(doc.UpdatedAt)
	if err != nil {
		return entity.Note{}, fmt.Errorf("note %s updated_at: %v", doc.ID, err)
	}

	return entity.Note{
		ID:        doc.ID,
		Title:     doc.Title,
		Content:   doc.Content,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func DocsToNotes(docs []NoteDoc) ([]entity.Note, error) {
	notes := make([]entity.Note, 0, len(docs))
	for _, doc := range docs {
		note, err := DocToNote(doc)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, nil
}
