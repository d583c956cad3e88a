package model

import "time"

// ProjectType classifies what a prospect is asking about.
type ProjectType string

const (
	ProjectInvestment ProjectType = "investment"
	ProjectAdvice     ProjectType = "advice"
	ProjectManagement ProjectType = "management"
	ProjectOther      ProjectType = "other"
)

var ValidProjectTypes = map[ProjectType]bool{
	ProjectInvestment: true, ProjectAdvice: true, ProjectManagement: true, ProjectOther: true,
}

// Lead is a validated contact-form submission handed to the sales pipeline.
type Lead struct {
	ID          string            `json:"id"`
	ReceivedAt  time.Time         `json:"receivedAt"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	Message     string            `json:"message"`
	ProjectType ProjectType       `json:"projectType"`
	Budget      string            `json:"budget,omitempty"`
	Timeline    string            `json:"timeline,omitempty"`
	Simulation  *SimulationConfig `json:"simulation,omitempty"`
}
