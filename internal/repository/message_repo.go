package repository

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"chat-protocol/internal/codec"
	"chat-protocol/internal/domain"
)

// MessageRepository persiste un mensaje codificado por archivo.
type MessageRepository interface {
	Save(msg domain.Message, path string) error
	Load(path string) (domain.Message, error)
}

// IOError envuelve fallas del sistema de archivos al guardar o leer mensajes.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("message file %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// FileMessageRepository escribe un documento JSON por archivo.
// No hay locking ni reemplazo atómico: con escritores concurrentes sobre el
// mismo path gana el último.
type FileMessageRepository struct {
	logger *zap.Logger
}

func NewFileMessageRepository(logger *zap.Logger) *FileMessageRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileMessageRepository{logger: logger}
}

// Save codifica msg y lo escribe como contenido completo de path, creando o
// truncando el archivo. Si la codificación falla no se toca el disco.
func (r *FileMessageRepository) Save(msg domain.Message, path string) (err error) {
	data, err := codec.Encode(msg)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if _, werr := f.Write(data); werr != nil {
		r.logger.Warn("message write failed", zap.String("path", path), zap.Error(werr))
		return &IOError{Op: "write", Path: path, Err: werr}
	}

	r.logger.Debug("message saved",
		zap.String("path", path),
		zap.String("kind", string(msg.Kind())),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Load lee path y decodifica el mensaje infiriendo su forma por el tag.
func (r *FileMessageRepository) Load(path string) (domain.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return codec.Decode(data)
}
