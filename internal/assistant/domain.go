package assistant

// DraftKind selects which kind of message the assistant writes.
type DraftKind string

const (
	// DraftReminder is a payment reminder addressed to a player's family.
	DraftReminder DraftKind = "REMINDER"
	// DraftConvocation is a match convocation for a team.
	DraftConvocation DraftKind = "CONVOCATION"
	// DraftAnnouncement is a free-form club announcement.
	DraftAnnouncement DraftKind = "ANNOUNCEMENT"
)

// Valid reports whether the draft kind is known.
func (k DraftKind) Valid() bool {
	return k == DraftReminder || k == DraftConvocation || k == DraftAnnouncement
}

// DraftRequest carries the facts the assistant builds a message from.
type DraftRequest struct {
	Kind          DraftKind `json:"kind"`
	RecipientName string    `json:"recipient_name"`
	Subject       string    `json:"subject"`
	AmountDue     float64   `json:"amount_due,omitempty"`
	Category      string    `json:"category,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// Draft is the assistant's generated message.
type Draft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
