package entity_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evgeniy-krivenko/syncnote/internal/entity"
)

func TestValidateTitle(t *testing.T) {
	cases := []struct {
		name    string
		title   string
		wantErr error
	}{
		{name: "ok", title: "Shopping List"},
		{name: "empty", title: "", wantErr: entity.ErrTitleRequired},
		{name: "whitespace only", title: "   ", wantErr: entity.ErrTitleRequired},
		{name: "max length", title: strings.Repeat("a", entity.MaxTitleLen)},
		{name: "too long", title: strings.Repeat("a", entity.MaxTitleLen+1), wantErr: entity.ErrTitleTooLong},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := entity.ValidateTitle(tc.title)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection refused")

	err := entity.NewStorageError("get note", "n1", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "get note")
	assert.Contains(t, err.Error(), "n1")

	var storageErr *entity.StorageError
	assert.ErrorAs(t, error(err), &storageErr)

	noID := entity.NewStorageError("list notes", "", cause)
	assert.Equal(t, "list notes: connection refused", noID.Error())
}
