package partial

// DuplicatePolicy controls what happens when two members of the inbound
// object normalize to the same lookup key (for example "name" and "NAME"
// under case-insensitive matching, or a literal duplicate key).
type DuplicatePolicy int

const (
	DuplicateError     DuplicatePolicy = iota // Reject the document with a duplicate_key issue.
	DuplicateFirstWins                        // Keep the first member.
	DuplicateLastWins                         // Keep the last member.
)

// Presence is the bit flag recorded per defined field.
type Presence uint8

const (
	PresenceDefined Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                      // Field value was an explicit null.
)

// Options bundles document-wide decode/encode options. The zero value means
// case-sensitive matching, no naming policy and duplicate keys rejected.
type Options struct {
	// CaseInsensitive matches member names against wire names after
	// invariant upper-casing both sides, one rune at a time: "ß" matches
	// only "ß", never "SS". Fields whose wire names collide once folded make
	// the call fail with ErrWireNameConflict.
	CaseInsensitive bool
	// NamingPolicy converts declared field names to wire names for fields
	// without an override. nil keeps declared names.
	NamingPolicy NamingPolicy
	// OnDuplicate selects duplicate lookup key handling.
	OnDuplicate DuplicatePolicy
}
