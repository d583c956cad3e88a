package validation

import (
	"regexp"
	"strings"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/request"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// French numbers, national or +33 form, once separators are stripped.
	phonePattern   = regexp.MustCompile(`^(?:\+33|0)[1-9][0-9]{8}$`)
	phoneSeparator = strings.NewReplacer(" ", "", ".", "", "-", "")
)

func ValidateContact(req request.ContactRequest) error {
	errs := &Error{}

	if strings.TrimSpace(req.FirstName) == "" {
		errs.add("firstName", "Prénom requis")
	}
	if strings.TrimSpace(req.LastName) == "" {
		errs.add("lastName", "Nom requis")
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs.add("email", "Email requis")
	} else if !emailPattern.MatchString(email) {
		errs.add("email", "Email invalide")
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		errs.add("phone", "Téléphone requis")
	} else if !phonePattern.MatchString(phoneSeparator.Replace(phone)) {
		errs.add("phone", "Téléphone invalide")
	}

	if strings.TrimSpace(req.Message) == "" {
		errs.add("message", "Message requis")
	}

	if req.ProjectType != "" && !model.ValidProjectTypes[model.ProjectType(strings.ToLower(strings.TrimSpace(req.ProjectType)))] {
		errs.add("projectType", "Type de projet invalide")
	}

	if req.Simulation != nil {
		if err := ValidateSimulationConfig(req.Simulation.Config()); err != nil {
			errs.add("simulation", "Simulation jointe invalide")
		}
	}

	if errs.empty() {
		return nil
	}
	return errs
}
