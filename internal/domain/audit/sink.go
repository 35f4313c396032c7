package audit

import "context"

// Sink receives audit entries. The core writes to it after every state
// change but never depends on the result; implementations must be safe to
// fail independently of the calling transaction.
type Sink interface {
	Record(ctx context.Context, entry Entry) error
}
