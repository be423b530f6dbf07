package opponents

// Opponent represents a rival club the teams play against.
type Opponent struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Stadium string `json:"stadium"`
	Contact string `json:"contact"`
}
