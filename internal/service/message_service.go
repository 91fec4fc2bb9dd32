package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chat-protocol/internal/domain"
	"chat-protocol/internal/idgen"
	"chat-protocol/internal/repository"
)

// MessageService arma mensajes listos para codificar y los archiva en disco.
type MessageService struct {
	repo      repository.MessageRepository
	ids       idgen.Generator
	outputDir string
	logger    *zap.Logger
	now       func() time.Time
}

var (
	ErrMessageServiceNotConfigured = errors.New("message service not configured")
	ErrMessageInvalidInput         = errors.New("message invalid input")
)

// ComposeRequestInput son los datos que aporta la capa de aplicación.
// MessageID y Timestamp en cero se completan automáticamente.
type ComposeRequestInput struct {
	Action         domain.Action
	MessageID      uint64
	SenderID       uint64
	SenderNickname string
	ContentKind    domain.ContentKind
	Content        []byte
	Receiver       string
	Timestamp      time.Time
}

func NewMessageService(repo repository.MessageRepository, ids idgen.Generator, outputDir string, logger *zap.Logger) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(outputDir) == "" {
		outputDir = "."
	}
	return &MessageService{
		repo:      repo,
		ids:       ids,
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *MessageService) ComposeRequest(in ComposeRequestInput) (domain.Request, error) {
	if s == nil {
		return domain.Request{}, ErrMessageServiceNotConfigured
	}

	in.SenderNickname = strings.TrimSpace(in.SenderNickname)
	in.Receiver = strings.TrimSpace(in.Receiver)

	if !in.Action.Valid() || !in.ContentKind.Valid() {
		return domain.Request{}, ErrMessageInvalidInput
	}
	if in.SenderNickname == "" || in.Receiver == "" {
		return domain.Request{}, ErrMessageInvalidInput
	}

	if in.MessageID == 0 {
		if s.ids == nil {
			return domain.Request{}, ErrMessageServiceNotConfigured
		}
		id, err := s.ids.NextID()
		if err != nil {
			return domain.Request{}, fmt.Errorf("generate message id: %w", err)
		}
		in.MessageID = id
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = s.now().UTC()
	}

	return domain.NewRequest(in.Action, domain.RequestPayload{
		MessageID:      in.MessageID,
		SenderID:       in.SenderID,
		SenderNickname: in.SenderNickname,
		ContentKind:    in.ContentKind,
		Content:        in.Content,
		Receiver:       in.Receiver,
		Timestamp:      in.Timestamp,
	}), nil
}

// Reply arma la respuesta correlacionada con req por message_id.
func (s *MessageService) Reply(req domain.Request, status domain.Status, msgStatus domain.MessageStatus) (domain.Response, error) {
	if s == nil {
		return domain.Response{}, ErrMessageServiceNotConfigured
	}
	if req.Kind() != domain.KindRequest || !status.Valid() || !msgStatus.Valid() {
		return domain.Response{}, ErrMessageInvalidInput
	}

	return domain.NewResponse(status, domain.ResponsePayload{
		MessageID:     req.Payload.MessageID,
		MessageStatus: msgStatus,
		Timestamp:     s.now().UTC(),
	}), nil
}

// Archive guarda msg en el directorio de salida y devuelve el path escrito.
// Sin nombre se usa "<uuid>.json".
func (s *MessageService) Archive(msg domain.Message, name string) (string, error) {
	if s == nil || s.repo == nil {
		return "", ErrMessageServiceNotConfigured
	}
	if msg == nil {
		return "", ErrMessageInvalidInput
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = uuid.NewString() + ".json"
	}
	path := filepath.Join(s.outputDir, name)

	if err := s.repo.Save(msg, path); err != nil {
		s.logger.Error("archive message failed", zap.String("path", path), zap.Error(err))
		return "", err
	}

	s.logger.Info("message archived",
		zap.String("path", path),
		zap.String("kind", string(msg.Kind())),
	)
	return path, nil
}
