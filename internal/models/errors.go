package models

import "errors"

// Sentinel errors shared by repositories, services and handlers. Handlers
// map these to HTTP status codes with errors.Is; repositories translate
// storage-level conditions (mongo.ErrNoDocuments, duplicate key errors)
// into them so callers never branch on driver errors.
var (
	// ErrGameNotFound is returned when a referenced game does not exist
	ErrGameNotFound = errors.New("game not found")

	// ErrTournamentNotFound is returned when a referenced tournament does not exist
	ErrTournamentNotFound = errors.New("tournament not found")

	// ErrGamerNotFound is returned when a referenced gamer does not exist
	ErrGamerNotFound = errors.New("gamer not found")

	// ErrBettorNotFound is returned when a referenced bettor does not exist
	ErrBettorNotFound = errors.New("bettor not found")

	// ErrEntryNotFound is returned when no entry exists for a lookup
	ErrEntryNotFound = errors.New("tournament entry not found")

	// ErrOptionNotFound is returned when a referenced prediction option does not exist
	ErrOptionNotFound = errors.New("prediction option not found")

	// ErrPredictionNotFound is returned when a referenced prediction does not exist
	ErrPredictionNotFound = errors.New("prediction not found")

	// ErrTournamentNotOpen is returned when a tournament is not published for entry
	ErrTournamentNotOpen = errors.New("tournament is not open for entry")

	// ErrTournamentStarted is returned when entry is attempted at or after startTime
	ErrTournamentStarted = errors.New("tournament has already started")

	// ErrPredictionClosed is returned when the tournament no longer accepts predictions
	ErrPredictionClosed = errors.New("tournament is not active for predictions")

	// ErrDuplicateEntry is returned when a gamer has already entered a tournament
	ErrDuplicateEntry = errors.New("gamer already entered this tournament")

	// ErrDuplicateOption is returned when an option already exists for a
	// (tournament, gamer) pair; options are created once per entry, so
	// hitting this outside the entry commit indicates a defect upstream
	ErrDuplicateOption = errors.New("prediction option already exists for this entry")

	// ErrEmailTaken is returned when a bettor registers with an email already in use
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidTransition is returned on a disallowed tournament status change
	ErrInvalidTransition = errors.New("invalid tournament status transition")

	// ErrConsistency wraps a failure inside the multi-effect commit of the
	// entry or prediction workflow. The surrounding transaction has been
	// rolled back; no partial state is visible.
	ErrConsistency = errors.New("ledger commit failed")
)
