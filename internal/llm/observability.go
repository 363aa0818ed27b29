package llm

import "go.uber.org/zap"

// LLMCallEvent records metadata about a single generation call.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about generation calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// ZapObserver logs call events as structured llm_call entries.
type ZapObserver struct {
	logger *zap.Logger
}

// NewZapObserver creates an Observer that logs events through logger.
func NewZapObserver(logger *zap.Logger) *ZapObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapObserver{logger: logger}
}

func (o *ZapObserver) OnCallComplete(event LLMCallEvent) {
	fields := []zap.Field{
		zap.String("task", string(event.Task)),
		zap.String("model", event.Model),
		zap.Int64("latency_ms", event.LatencyMs),
		zap.Bool("success", event.Success),
	}
	if !event.Success {
		fields = append(fields, zap.String("error_code", event.ErrorCode))
		o.logger.Warn("llm_call", fields...)
		return
	}
	o.logger.Info("llm_call", fields...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}

// ObserverFor returns a zap-backed observer when call logging is enabled.
func ObserverFor(cfg LLMConfig, logger *zap.Logger) Observer {
	if cfg.LogCalls && logger != nil {
		return NewZapObserver(logger)
	}
	return NoopObserver{}
}
