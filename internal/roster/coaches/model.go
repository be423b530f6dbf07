package coaches

// Coach represents a member of the coaching staff.
type Coach struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Category string `json:"category"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Active   bool   `json:"active"`
}
