package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chat-protocol/internal/codec"
	"chat-protocol/internal/config"
	"chat-protocol/internal/domain"
	"chat-protocol/internal/idgen"
	"chat-protocol/internal/repository"
	"chat-protocol/internal/service"
)

const usage = `msgctl manipula mensajes del protocolo guardados en disco.

Usage:
  msgctl compose -action SendMessage -nick Alice -to Bob -content "hola" [-out name.json]
  msgctl reply   -in request.json [-status Success] [-message-status Delivered] [-out name.json]
  msgctl inspect file.json [file.json ...]
`

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: loading .env: %v", err)
	}
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run ejecuta el subcomando y devuelve el código de salida; así el logger se
// sincroniza antes de que main termine el proceso.
func run(args []string, stderr io.Writer) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("config: %v", err)
		return 1
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Printf("logger: %v", err)
		return 1
	}
	defer logger.Sync()

	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	ids, err := idgen.NewSnowflake(cfg.NodeID)
	if err != nil {
		logger.Error("id generator", zap.Error(err))
		return 1
	}
	repo := repository.NewFileMessageRepository(logger)
	svc := service.NewMessageService(repo, ids, cfg.OutputDir, logger)

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "compose":
		err = runCompose(svc, rest)
	case "reply":
		err = runReply(svc, repo, rest)
	case "inspect":
		err = runInspect(repo, rest)
	default:
		fmt.Fprint(stderr, usage)
		return 2
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", cmd), zap.Error(err))
		return 1
	}
	return 0
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func runCompose(svc *service.MessageService, args []string) error {
	fs := flag.NewFlagSet("compose", flag.ContinueOnError)
	action := fs.String("action", string(domain.ActionSendMessage), "Login | SendMessage")
	id := fs.Uint64("id", 0, "message id (0 = generated)")
	senderID := fs.Uint64("sender-id", 0, "sender account id")
	nick := fs.String("nick", "", "sender nickname")
	kind := fs.String("type", string(domain.ContentText), "Text | Image | File")
	content := fs.String("content", "", "inline content")
	contentFile := fs.String("content-file", "", "read content bytes from file")
	to := fs.String("to", "", "receiver")
	out := fs.String("out", "", "output file name inside MSG_OUTPUT_DIR")
	if err := fs.Parse(args); err != nil {
		return err
	}

	body := []byte(*content)
	if *contentFile != "" {
		data, err := os.ReadFile(*contentFile)
		if err != nil {
			return fmt.Errorf("read content file: %w", err)
		}
		body = data
	}

	req, err := svc.ComposeRequest(service.ComposeRequestInput{
		Action:         domain.Action(*action),
		MessageID:      *id,
		SenderID:       *senderID,
		SenderNickname: *nick,
		ContentKind:    domain.ContentKind(*kind),
		Content:        body,
		Receiver:       *to,
	})
	if err != nil {
		return err
	}

	path, err := svc.Archive(req, *out)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runReply(svc *service.MessageService, repo repository.MessageRepository, args []string) error {
	fs := flag.NewFlagSet("reply", flag.ContinueOnError)
	in := fs.String("in", "", "request file to answer")
	status := fs.String("status", string(domain.StatusSuccess), "Success | Error")
	msgStatus := fs.String("message-status", string(domain.MessageDelivered), "Delivered | Read | Undelivered")
	out := fs.String("out", "", "output file name inside MSG_OUTPUT_DIR")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("reply: -in is required")
	}

	msg, err := repo.Load(*in)
	if err != nil {
		return err
	}
	req, ok := msg.(domain.Request)
	if !ok {
		return fmt.Errorf("reply: %s holds a %s, not a Request", *in, msg.Kind())
	}

	resp, err := svc.Reply(req, domain.Status(*status), domain.MessageStatus(*msgStatus))
	if err != nil {
		return err
	}
	path, err := svc.Archive(resp, *out)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runInspect(repo repository.MessageRepository, paths []string) error {
	if len(paths) == 0 {
		return errors.New("inspect: at least one file is required")
	}
	for _, p := range paths {
		msg, err := repo.Load(p)
		if err != nil {
			return err
		}
		switch m := msg.(type) {
		case domain.Request:
			fmt.Printf("%s: Request %s id=%d from=%s(%d) to=%s type=%s bytes=%d at=%s\n",
				p, m.Action, m.Payload.MessageID, m.Payload.SenderNickname, m.Payload.SenderID,
				m.Payload.Receiver, m.Payload.ContentKind, len(m.Payload.Content), codec.FormatTimestamp(m.Payload.Timestamp))
			if m.Payload.ContentKind == domain.ContentText {
				fmt.Printf("  %s\n", m.Payload.Content)
			}
		case domain.Response:
			fmt.Printf("%s: Response %s id=%d status=%s at=%s\n",
				p, m.Status, m.Payload.MessageID, m.Payload.MessageStatus, codec.FormatTimestamp(m.Payload.Timestamp))
		}
	}
	return nil
}
