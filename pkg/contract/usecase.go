package contract

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/architect/pkg/llm"
)

// UseCase describes contract generation and review.
type UseCase interface {
	Generate(ctx context.Context, prompt string) (Generation, error)
	Audit(ctx context.Context, source string) (string, error)
	Artifact() Artifact
}

type service struct {
	assistant   llm.Assistant
	artifact    Artifact
	constraints Constraints
	log         *zap.SugaredLogger
}

func NewService(assistant llm.Assistant, artifact Artifact, constraints Constraints, log *zap.SugaredLogger) UseCase {
	return &service{
		assistant:   assistant,
		artifact:    artifact,
		constraints: constraints,
		log:         log,
	}
}

func (s *service) Artifact() Artifact { return s.artifact }

// Generate runs compose, ask, extract and write. Nothing is written unless
// the service answered with a success status.
func (s *service) Generate(ctx context.Context, prompt string) (Generation, error) {
	id := uuid.New()
	req := ComposeGenerate(prompt, s.constraints)
	s.log.Debugw("requesting contract", "id", id, "model", req.Model)

	resp, err := s.assistant.Ask(ctx, req)
	if err != nil {
		return Generation{}, &TransportError{Err: err}
	}
	if !resp.Status {
		return Generation{}, &APIError{Message: resp.Message}
	}

	source := ExtractSource(resp.Body)
	path, err := s.artifact.Write(source)
	if err != nil {
		return Generation{}, err
	}
	s.log.Infow("artifact written", "id", id, "path", path, "bytes", len(source))
	return Generation{ID: id, Prompt: prompt, Source: source, Path: path}, nil
}

// Audit returns the auditor's report for source verbatim.
func (s *service) Audit(ctx context.Context, source string) (string, error) {
	resp, err := s.assistant.Ask(ctx, ComposeAudit(source, s.constraints))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if !resp.Status {
		return "", &APIError{Message: resp.Message}
	}
	return resp.Body, nil
}
