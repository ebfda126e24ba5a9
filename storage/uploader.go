package storage

import (
	"context"
	"io"
)

// FileUploader абстрагирует хранилище логотипов команд.
// Ключ объекта формирует вызывающий код, публичный URL строит хранилище.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) error

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
