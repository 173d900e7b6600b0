package domain

import (
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
)

type Specialist struct {
	ID        json_types.FlexID `json:"id"`
	Name      string            `json:"name"`
	Username  string            `json:"-"`
	Password  string            `json:"-"`
	Specialty string            `json:"specialty"`
	Keywords  []string          `json:"keywords"`
	Rating    float64           `json:"rating"`
	Image     string            `json:"img"`
}

// SpecialistBrief is the projection sent to the AI classifier.
// Ratings, images and credentials are left out to keep the prompt small.
type SpecialistBrief struct {
	ID        json_types.FlexID `json:"id"`
	Specialty string            `json:"specialty"`
	Keywords  []string          `json:"keywords"`
}

func (s Specialist) Brief() SpecialistBrief {
	return SpecialistBrief{
		ID:        s.ID,
		Specialty: s.Specialty,
		Keywords:  s.Keywords,
	}
}

func FindSpecialist(roster []Specialist, id json_types.FlexID) (Specialist, bool) {
	for _, specialist := range roster {
		if specialist.ID == id {
			return specialist, true
		}
	}
	return Specialist{}, false
}

// FallbackSpecialists is the built-in roster used when the store is unreachable or empty.
func FallbackSpecialists() []Specialist {
	return []Specialist{
		{ID: "1", Name: "Dr. Sarah Chen", Username: "sarah", Password: "123", Specialty: "Neurologist", Keywords: []string{"headache", "migraine", "head", "dizzy", "concussion"}, Rating: 4.9, Image: "https://i.pravatar.cc/150?u=sarah"},
		{ID: "2", Name: "Dr. James Wilson", Username: "james", Password: "123", Specialty: "Cardiologist", Keywords: []string{"heart", "chest", "pain", "palpitations", "pressure"}, Rating: 4.8, Image: "https://i.pravatar.cc/150?u=james"},
		{ID: "3", Name: "Dr. Elena Rodriguez", Username: "elena", Password: "123", Specialty: "Dermatologist", Keywords: []string{"skin", "rash", "itch", "red", "acne"}, Rating: 4.7, Image: "https://i.pravatar.cc/150?u=elena"},
		{ID: "4", Name: "Dr. Lisa Park", Username: "lisa", Password: "123", Specialty: "General Physician", Keywords: []string{"flu", "fever", "cold", "cough", "stomach"}, Rating: 4.6, Image: "https://i.pravatar.cc/150?u=lisa"},
	}
}
