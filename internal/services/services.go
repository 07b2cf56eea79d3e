// Package services implements the application core: the vote ledger and
// score aggregator, the comment tree builder, and the policy-gated post and
// community operations. Handlers stay thin; everything with an invariant
// lives here, against the store interfaces.
package services

import (
	"log"

	"github.com/breddit-app/backend/internal/apperr"
)

// serverError logs the underlying cause and returns the opaque 500 value;
// storage failures are never surfaced verbatim to clients.
func serverError(op string, err error) error {
	log.Printf("%s: %v", op, err)
	return apperr.ErrServer
}
