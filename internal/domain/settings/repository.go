package settings

import "context"

// Repository loads and saves Settings. A missing store yields zero-value Settings.
type Repository interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

// ErrCorruptSettings indicates a settings file exists but cannot be decoded
type ErrCorruptSettings struct {
	Source string
	Err    error
}

func (e ErrCorruptSettings) Error() string {
	return "corrupt settings in " + e.Source + ": " + e.Err.Error()
}

func (e ErrCorruptSettings) Unwrap() error {
	return e.Err
}
