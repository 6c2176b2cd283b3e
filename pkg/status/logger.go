package status

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about path operations
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🖼️ PathChange represents one reportable change to a path
type PathChange struct {
	Op     Op
	Path   string
	Detail string
	Err    error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 formatChange builds the column line for a change
func formatChange(change PathChange) string {
	msg := FormatPathOperation(change.Path, change.Op)
	if change.Detail != "" {
		msg += fmt.Sprintf(" (%s)", change.Detail)
	}
	return msg
}

// 📝 LogPathChange logs a path change with appropriate emoji and formatting
func (u *UserLogger) LogPathChange(change PathChange) {
	var prefix string
	var printer *pterm.PrefixPrinter
	switch change.Op {
	case OpCopied, OpCreated, OpBackedUp:
		prefix = "✨"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case OpMoved:
		prefix = "🔄"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case OpDeleted:
		prefix = "🗑️"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	case OpSkipped:
		prefix = "⏭️"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case OpError:
		prefix = "❌"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	default:
		prefix = "ℹ️"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	}

	printer.Println(formatChange(change))

	if change.Err != nil {
		pterm.Error.Println(FormatError(change.Err))
		u.log.Debug().Err(change.Err).Str("path", change.Path).Msg("path operation failed")
		return
	}
	u.log.Debug().Str("path", change.Path).Str("op", change.Op.String()).Msg("path operation reported")
}
