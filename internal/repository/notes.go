package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/evgeniy-krivenko/syncnote/internal/entity"
	"github.com/evgeniy-krivenko/syncnote/internal/repository/converter"
	"github.com/evgeniy-krivenko/syncnote/pkg/logger/slogx"
)

func (r *Repo) FindNote(ctx context.Context, noteID string) (entity.Note, error) {
	var doc converter.NoteDoc
	err := r.notes.FindOne(ctx, bson.M{"id": noteID}, findOneOpts()).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entity.Note{}, entity.ErrNoteNotFound
		}
		return entity.Note{}, fmt.Errorf("find note: %v", err)
	}

	return converter.DocToNote(doc)
}

func (r *Repo) FindAllNotes(ctx context.Context) ([]entity.Note, error) {
	cur, err := r.notes.Find(ctx, bson.M{}, findOpts())
	if err != nil {
		return nil, fmt.Errorf("find all notes: %v", err)
	}
	defer cur.Close(ctx)

	var docs []converter.NoteDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode all notes: %v", err)
	}

	return converter.DocsToNotes(docs)
}

func (r *Repo) InsertNote(ctx context.Context, note entity.Note) error {
	if _, err := r.notes.InsertOne(ctx, converter.NoteToDoc(note)); err != nil {
		return fmt.Errorf("insert note: %v", err)
	}

	slogx.Debug(ctx, "note inserted", slogx.NoteID(note.ID))

	return nil
}

func (r *Repo) UpdateNoteTitle(ctx context.Context, noteID, title string, updatedAt entity.Timestamp) error {
	_, err := r.notes.UpdateOne(ctx,
		bson.M{"id": noteID},
		bson.M{"$set": bson.M{"title": title, "updated_at": updatedAt.String()}},
	)
	if err != nil {
		return fmt.Errorf("update note title: %v", err)
	}

	return nil
}

// UpsertNote overwrites the stored document, inserting when absent. Last
// writer wins, no version check.
func (r *Repo) UpsertNote(ctx context.Context, note entity.Note) error {
	_, err := r.notes.UpdateOne(ctx,
		bson.M{"id": note.ID},
		bson.M{"$set": converter.NoteToDoc(note)},
		mongoopts.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert note: %v", err)
	}

	return nil
}

func (r *Repo) DeleteNote(ctx context.Context, noteID string) error {
	res, err := r.notes.DeleteOne(ctx, bson.M{"id": noteID})
	if err != nil {
		return fmt.Errorf("delete note: %v", err)
	}
	if res.DeletedCount == 0 {
		return entity.ErrNoteNotFound
	}

	return nil
}
