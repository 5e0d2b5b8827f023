package logger

import "go.uber.org/zap"

// zapLogger adapts a *zap.SugaredLogger to the Logger interface, for
// deployments that want structured, leveled production logging instead
// of the plain standardLogger.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps an existing zap logger. Callers typically build the
// zap.Logger with their own encoder/sink configuration and pass it here.
func NewZapLogger(z *zap.Logger) *zapLogger {
	return &zapLogger{sugar: z.Sugar()}
}

func (z *zapLogger) Printf(format string, v ...interface{}) { z.sugar.Infof(format, v...) }
func (z *zapLogger) Debugf(format string, v ...interface{}) { z.sugar.Debugf(format, v...) }
func (z *zapLogger) Infof(format string, v ...interface{})  { z.sugar.Infof(format, v...) }
func (z *zapLogger) Warnf(format string, v ...interface{})  { z.sugar.Warnf(format, v...) }
func (z *zapLogger) Errorf(format string, v ...interface{}) { z.sugar.Errorf(format, v...) }
func (z *zapLogger) Panicf(format string, v ...interface{}) { z.sugar.Panicf(format, v...) }

func (z *zapLogger) WithPrefix(prefix string) Logger {
	return &zapLogger{sugar: z.sugar.Named(prefix)}
}
