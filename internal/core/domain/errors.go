package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoFragments indicates a story was requested without any usable
	// memory fragment.
	ErrNoFragments = errors.New("no memory fragments provided")

	// ErrEmptyStory indicates an enhancement was requested for empty
	// story text.
	ErrEmptyStory = errors.New("empty story text")

	// ErrGeneratorUnavailable indicates no text-generation backend is
	// configured. Emotion analysis keeps working without one.
	ErrGeneratorUnavailable = errors.New("text generator unavailable")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
