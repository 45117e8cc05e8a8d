package wallet

import "context"

// Store maps chat user ids to wallet bindings. Implementations must be safe
// for concurrent use; callers enforce the one-binding-per-user rule by
// checking Get before Set on connect flows.
type Store interface {
	// Get returns the binding for a user, or nil when none exists.
	Get(ctx context.Context, userID string) (*Binding, error)

	// Set stores the binding for a user, replacing any previous one.
	Set(ctx context.Context, userID string, binding *Binding) error

	// Remove deletes the binding for a user. Removing an absent binding is
	// not an error.
	Remove(ctx context.Context, userID string) error
}
