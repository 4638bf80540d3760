package userlog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about patch runs
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 OutcomeType represents the outcome of a run against a target file
type OutcomeType int

const (
	TargetPatched OutcomeType = iota
	TargetUnchanged
	TargetBackedUp
	TargetRestored
	TargetError
)

// 🖼️ Outcome represents what happened to the target file
type Outcome struct {
	Type        OutcomeType
	Path        string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogOutcome logs a target outcome with appropriate emoji and formatting
func (u *UserLogger) LogOutcome(outcome Outcome) {
	// Get relative path for cleaner output
	relPath := filepath.Base(outcome.Path)

	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch outcome.Type {
	case TargetPatched:
		prefix = "✨"
		action = "Patched"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case TargetUnchanged:
		prefix = "👍"
		action = "Unchanged"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case TargetBackedUp:
		prefix = "💾"
		action = "Backed up"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case TargetRestored:
		prefix = "⏪"
		action = "Restored"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	case TargetError:
		prefix = "❌"
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s", action, relPath)
	if outcome.Description != "" {
		msg += fmt.Sprintf(" (%s)", outcome.Description)
	}

	if outcome.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(outcome.Error)
		u.log.Error().Err(outcome.Error).Msg(msg) // Also log to zerolog for debugging
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg) // Also log to zerolog for debugging
	}
}

// 📊 LogRunChange logs a change to the overall run
func (u *UserLogger) LogRunChange(description string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"})
	printer.Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
	} else {
		if err != nil {
			pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
			pterm.Error.Println(err)
			u.log.Error().Err(err).Msg(description)
		} else {
			pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
			u.log.Warn().Msg(description)
		}
	}
}
