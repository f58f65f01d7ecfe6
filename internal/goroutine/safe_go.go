package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/salary-backend/internal/logger"
)

// SafeGo запускает горутину с обработкой panic
func SafeGo(fn func()) {
	go func() {
		defer recoverPanic()
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer recoverPanic()
		fn(ctx)
	}()
}

// Run выполняет fn в текущей горутине и превращает panic в запись лога.
// Используется для фоновых задач планировщика.
func Run(name string, fn func()) {
	defer recoverPanic(logrus.Fields{"job": name})
	fn()
}

func recoverPanic(fields ...logrus.Fields) {
	r := recover()
	if r == nil {
		return
	}
	entry := logger.Log.WithField("panic", r).WithField("stack", string(debug.Stack()))
	for _, f := range fields {
		entry = entry.WithFields(f)
	}
	entry.Error("Panic in goroutine")
}
