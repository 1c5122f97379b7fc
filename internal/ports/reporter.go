package ports

// Reporter is the logging sink handed to every component. *slog.Logger
// satisfies it.
type Reporter interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}
