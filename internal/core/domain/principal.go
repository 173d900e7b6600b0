package domain

import (
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
)

type Role string

const (
	RoleDoctor Role = "doctor"
	RoleAdmin  Role = "admin"
)

type Principal struct {
	Role         Role              `json:"role"`
	Name         string            `json:"name"`
	SpecialistID json_types.FlexID `json:"specialist_id,omitempty"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
