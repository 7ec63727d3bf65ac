package interview

import (
	"context"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/abhisek/skillcheck/internal/logging"
)

// LoggingService is a decorator that logs every service call with its
// latency and outcome.
type LoggingService struct {
	inner  Service
	logger *zap.Logger
}

// WithLogging wraps a Service with structured call logging. The logger is
// also placed in the call context so transport-level logging shares it.
func WithLogging(s Service, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingService{inner: s, logger: logger}
}

func (l *LoggingService) Start(ctx context.Context, req StartRequest) (*StartResponse, error) {
	ctx, log := l.scope(ctx, "start")
	start := time.Now()

	resp, err := l.inner.Start(ctx, req)

	fields := []zap.Field{zap.Duration("latency", time.Since(start))}
	if err != nil {
		log.Warn("interview start failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	log.Info("interview started", append(fields,
		zap.String("session_id", resp.SessionID),
		zap.Int("total_questions", resp.TotalQuestions),
	)...)
	return resp, nil
}

func (l *LoggingService) SubmitAnswer(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	ctx, log := l.scope(ctx, "submit_answer", zap.String("session_id", req.SessionID))
	start := time.Now()

	resp, err := l.inner.SubmitAnswer(ctx, req)

	fields := []zap.Field{
		zap.Duration("latency", time.Since(start)),
		zap.Int("answer_len", len(req.Answer)),
	}
	if err != nil {
		log.Warn("answer submission failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	if resp.Completed() {
		log.Info("interview completed", fields...)
	} else {
		fields = append(fields, zap.Int("next_question", resp.QuestionNumber))
		if resp.Score != nil {
			fields = append(fields, zap.Float64("score", *resp.Score))
		}
		log.Info("answer evaluated", fields...)
	}
	return resp, nil
}

// scope puts the decorator's logger, tagged with action and fields, into
// ctx so the transport's request logs carry the same tags.
func (l *LoggingService) scope(ctx context.Context, action string, fields ...zap.Field) (context.Context, *zap.Logger) {
	ctx = logging.WithAction(logging.ToContext(ctx, l.logger), action)
	if len(fields) > 0 {
		ctx = logging.AddFields(ctx, fields...)
	}
	return ctx, ctxzap.Extract(ctx)
}
