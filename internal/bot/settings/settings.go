// Package settings holds the bot-wide values that users can change at
// runtime: persona, sampling temperature, output token cap and the history
// length that triggers summarization.
package settings

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Accepted ranges for runtime updates.
const (
	MinMaxTokens   = 1
	MaxMaxTokens   = 4096
	MinTemperature = 0.0
	MaxTemperature = 1.0

	// FallbackPersona is used when no persona is configured.
	FallbackPersona = "generic assistant"
)

var (
	// ErrInvalidMaxTokens is returned when a token cap is outside [1, 4096].
	ErrInvalidMaxTokens = errors.New("max tokens out of range")
	// ErrInvalidTemperature is returned when a temperature is outside [0, 1].
	ErrInvalidTemperature = errors.New("temperature out of range")
	// ErrInvalidHistoryLength is returned for a non-positive history length.
	ErrInvalidHistoryLength = errors.New("history length must be positive")
)

var validate = validator.New()

var (
	maxTokensRule   = fmt.Sprintf("min=%d,max=%d", MinMaxTokens, MaxMaxTokens)
	temperatureRule = fmt.Sprintf("min=%g,max=%g", MinTemperature, MaxTemperature)
)

// Snapshot is a consistent copy of the settings at one point in time.
type Snapshot struct {
	Persona          string
	Temperature      float32
	MaxTokens        int
	MaxHistoryLength int
}

// Settings is safe for concurrent use. Updates are validated and an invalid
// update leaves the previous value unchanged.
type Settings struct {
	mu               sync.RWMutex
	persona          string
	temperature      float32
	maxTokens        int
	maxHistoryLength int
}

// New creates Settings from startup values, validating each of them.
func New(persona string, temperature float32, maxTokens, maxHistoryLength int) (*Settings, error) {
	s := &Settings{persona: persona}
	if s.persona == "" {
		s.persona = FallbackPersona
	}
	if err := s.SetTemperature(temperature); err != nil {
		return nil, err
	}
	if err := s.SetMaxTokens(maxTokens); err != nil {
		return nil, err
	}
	if err := s.SetMaxHistoryLength(maxHistoryLength); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns a copy of all current values.
func (s *Settings) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Persona:          s.persona,
		Temperature:      s.temperature,
		MaxTokens:        s.maxTokens,
		MaxHistoryLength: s.maxHistoryLength,
	}
}

// Persona returns the current persona text.
func (s *Settings) Persona() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persona
}

// SetPersona replaces the persona text.
func (s *Settings) SetPersona(persona string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persona = persona
}

// Temperature returns the current sampling temperature.
func (s *Settings) Temperature() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.temperature
}

// SetTemperature sets the sampling temperature if it lies in [0, 1].
func (s *Settings) SetTemperature(t float32) error {
	if err := validate.Var(t, temperatureRule); err != nil || math.IsNaN(float64(t)) {
		return fmt.Errorf("%w: %v", ErrInvalidTemperature, t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.temperature = t
	return nil
}

// MaxTokens returns the current output token cap.
func (s *Settings) MaxTokens() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxTokens
}

// SetMaxTokens sets the output token cap if it lies in [1, 4096].
func (s *Settings) SetMaxTokens(n int) error {
	if err := validate.Var(n, maxTokensRule); err != nil {
		return fmt.Errorf("%w: %d", ErrInvalidMaxTokens, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxTokens = n
	return nil
}

// MaxHistoryLength returns the transcript length, in characters, above which
// history is summarized before use.
func (s *Settings) MaxHistoryLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxHistoryLength
}

// SetMaxHistoryLength sets the summarization threshold.
func (s *Settings) SetMaxHistoryLength(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidHistoryLength, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxHistoryLength = n
	return nil
}
