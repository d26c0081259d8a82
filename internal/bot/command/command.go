// Package command turns raw chat text into typed bot commands.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Command is one parsed bot command. The concrete types below are the only
// implementations.
type Command interface {
	// Name is the command word users type after the prefix.
	Name() string
	isCommand()
}

// Prompt is a conversational turn.
type Prompt struct{ Text string }

// Image asks for a generated image. Terms "random" derives the terms from
// the current persona.
type Image struct{ Terms string }

// Random reports whether the image terms should be invented from the persona.
func (c Image) Random() bool { return c.Terms == RandomArgument }

// Role replaces the persona. An empty Text or "random" picks a random one.
type Role struct{ Text string }

// Random reports whether a random persona was requested.
func (c Role) Random() bool { return c.Text == "" || c.Text == RandomArgument }

// RandomRole picks a random persona.
type RandomRole struct{}

// Tokens sets the output token cap.
type Tokens struct{ N int }

// Temp sets the sampling temperature.
type Temp struct{ T float32 }

// Forget clears the caller's history.
type Forget struct{}

// Summarize reports a summary of the caller's history.
type Summarize struct{}

// Help lists the available commands.
type Help struct{}

// Command names.
const (
	NamePrompt     = "prompt"
	NameImage      = "image"
	NameRole       = "role"
	NameRandomRole = "random_role"
	NameTokens     = "tokens"
	NameTemp       = "temp"
	NameForget     = "forget"
	NameSummarize  = "summarize"
	NameHelp       = "help"
)

// RandomArgument selects the randomized variant of image and role.
const RandomArgument = "random"

func (Prompt) Name() string     { return NamePrompt }
func (Image) Name() string      { return NameImage }
func (Role) Name() string       { return NameRole }
func (RandomRole) Name() string { return NameRandomRole }
func (Tokens) Name() string     { return NameTokens }
func (Temp) Name() string       { return NameTemp }
func (Forget) Name() string     { return NameForget }
func (Summarize) Name() string  { return NameSummarize }
func (Help) Name() string       { return NameHelp }

func (Prompt) isCommand()     {}
func (Image) isCommand()      {}
func (Role) isCommand()       {}
func (RandomRole) isCommand() {}
func (Tokens) isCommand()     {}
func (Temp) isCommand()       {}
func (Forget) isCommand()     {}
func (Summarize) isCommand()  {}
func (Help) isCommand()       {}

// ErrNotCommand is returned for text that is not addressed to the bot: a
// group message without the prefix, a bare prefix, or an empty message.
var ErrNotCommand = errors.New("not a command")

// UnknownCommandError is returned for a prefixed word that names no command.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

// MissingArgumentError is returned when a required argument is absent.
type MissingArgumentError struct {
	Command  string
	Argument string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("command %q: missing required argument %q", e.Command, e.Argument)
}

// BadArgumentError is returned when an argument cannot be converted to its type.
type BadArgumentError struct {
	Command  string
	Argument string
	Value    string
	Err      error
}

func (e *BadArgumentError) Error() string {
	return fmt.Sprintf("command %q: invalid %s %q: %v", e.Command, e.Argument, e.Value, e.Err)
}

func (e *BadArgumentError) Unwrap() error { return e.Err }

// Info documents one command for the help listing.
type Info struct {
	Name        string
	Usage       string
	Description string
}

// Catalog lists every command in help order.
var Catalog = []Info{
	{Name: NamePrompt, Usage: "<text>", Description: "Talk to the bot. It remembers your conversation."},
	{Name: NameImage, Usage: "<random|terms>", Description: "Generate an image from the terms, or from the current role."},
	{Name: NameRole, Usage: "[random|text]", Description: "Set the bot's role and clear your history."},
	{Name: NameRandomRole, Description: "Make up a random role and clear your history."},
	{Name: NameTokens, Usage: "<1-4096>", Description: "Set the maximum answer length in tokens."},
	{Name: NameTemp, Usage: "<0.0-1.0>", Description: "Set the answer randomness."},
	{Name: NameForget, Description: "Clear your conversation history."},
	{Name: NameSummarize, Description: "Summarize your conversation history."},
	{Name: NameHelp, Description: "Show this list."},
}

// Parse reads a command from text. A direct message without the prefix is
// treated as a prompt carrying the whole message.
func Parse(text, prefix string, direct bool) (Command, error) {
	if !strings.HasPrefix(text, prefix) {
		if direct && strings.TrimSpace(text) != "" {
			return Prompt{Text: text}, nil
		}
		return nil, ErrNotCommand
	}

	rest := text[len(prefix):]
	if rest == "" || startsWithSpace(rest) {
		return nil, ErrNotCommand
	}

	name, args := rest, ""
	if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
		name, args = rest[:i], strings.TrimSpace(rest[i:])
	}

	switch name {
	case NamePrompt:
		if args == "" {
			return nil, &MissingArgumentError{Command: name, Argument: "text"}
		}
		return Prompt{Text: args}, nil
	case NameImage:
		if args == "" {
			return nil, &MissingArgumentError{Command: name, Argument: "terms"}
		}
		return Image{Terms: args}, nil
	case NameRole:
		return Role{Text: args}, nil
	case NameRandomRole:
		return RandomRole{}, nil
	case NameTokens:
		arg, ok := firstField(args)
		if !ok {
			return nil, &MissingArgumentError{Command: name, Argument: "n"}
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				// Well-formed but huge; the range check rejects it later.
				return Tokens{N: -1}, nil
			}
			return nil, &BadArgumentError{Command: name, Argument: "n", Value: arg, Err: err}
		}
		return Tokens{N: n}, nil
	case NameTemp:
		arg, ok := firstField(args)
		if !ok {
			return nil, &MissingArgumentError{Command: name, Argument: "t"}
		}
		t, err := strconv.ParseFloat(arg, 32)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, &BadArgumentError{Command: name, Argument: "t", Value: arg, Err: err}
		}
		return Temp{T: float32(t)}, nil
	case NameForget:
		return Forget{}, nil
	case NameSummarize:
		return Summarize{}, nil
	case NameHelp:
		return Help{}, nil
	default:
		return nil, &UnknownCommandError{Name: name}
	}
}

func firstField(s string) (string, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}
