package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/evgeniy-krivenko/syncnote/internal/entity"
)

func apiURL(path string) string {
	return "http://" + serverAddr + "/api/notes" + path
}

func doJSON(ctx context.Context, method, url string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %v", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Detail != "" {
			return fmt.Errorf("server: %s (%d)", apiErr.Detail, resp.StatusCode)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %v", err)
	}

	return nil
}

func apiCreateNote(ctx context.Context, title string) (entity.Note, error) {
	var note entity.Note
	err := doJSON(ctx, http.MethodPost, apiURL(""), map[string]string{"title": title}, &note)
	return note, err
}

func apiListNotes(ctx context.Context) ([]entity.Note, error) {
	var notes []entity.Note
	err := doJSON(ctx, http.MethodGet, apiURL(""), nil, &notes)
	return notes, err
}

func apiGetNote(ctx context.Context, noteID string) (entity.Note, error) {
	var note entity.Note
	err := doJSON(ctx, http.MethodGet, apiURL("/"+noteID), nil, &note)
	return note, err
}

func apiDeleteNote(ctx context.Context, noteID string) error {
	return doJSON(ctx, http.MethodDelete, apiURL("/"+noteID), nil, nil)
}

func apiUpdateTitle(ctx context.Context, noteID, title string) (entity.Note, error) {
	var note entity.Note
	err := doJSON(ctx, http.MethodPut, apiURL("/"+noteID+"/title"), map[string]string{"title": title}, &note)
	return note, err
}

func printNote(note entity.Note) {
	fmt.Printf("id:         %s\n", note.ID)
	fmt.Printf("title:      %s\n", note.Title)
	fmt.Printf("created_at: %s\n", note.CreatedAt)
	fmt.Printf("updated_at: %s\n", note.UpdatedAt)
	if note.Content != "" {
		fmt.Printf("content:\n%s\n", note.Content)
	}
}
