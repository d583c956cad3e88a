package request

// ContactRequest represents the request body of the contact form. Simulation
// optionally attaches the configuration the visitor was looking at.
type ContactRequest struct {
	FirstName   string             `json:"firstName"`
	LastName    string             `json:"lastName"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Message     string             `json:"message"`
	ProjectType string             `json:"projectType"`
	Budget      string             `json:"budget,omitempty"`
	Timeline    string             `json:"timeline,omitempty"`
	Simulation  *SimulationRequest `json:"simulation,omitempty"`
}
