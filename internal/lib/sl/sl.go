// Package sl содержит мелкие помощники для логгера slog.
package sl

import "log/slog"

// Err упаковывает ошибку в атрибут с ключом "error",
// чтобы все записи об ошибках выглядели одинаково:
//
//	log.Error("failed to list tasks", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
