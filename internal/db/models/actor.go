package models

import "fmt"

// ActorRole identifies which collection an actor reference points at.
type ActorRole string

// Actor role constants
const (
	// ActorRoleCustomer is a customer account
	ActorRoleCustomer ActorRole = "customer"
	// ActorRoleProfessional is a service professional account
	ActorRoleProfessional ActorRole = "professional"
	// ActorRoleAdmin is a platform operator
	ActorRoleAdmin ActorRole = "admin"
)

// ParseActorRole converts a string to an ActorRole
func ParseActorRole(str string) (ActorRole, error) {
	switch str {
	case string(ActorRoleCustomer):
		return ActorRoleCustomer, nil
	case string(ActorRoleProfessional):
		return ActorRoleProfessional, nil
	case string(ActorRoleAdmin):
		return ActorRoleAdmin, nil
	default:
		return "", fmt.Errorf("invalid actor role: %s", str)
	}
}

// ActorRef is a tagged reference to the account that performed an
// action. The role tag replaces the string-discriminator-plus-dynamic-
// reference pattern so the target collection is always explicit.
type ActorRef struct {
	Role ActorRole `json:"role"`
	ID   uint      `json:"id"`
}

// CustomerRef returns an ActorRef for a customer account
func CustomerRef(id uint) ActorRef { return ActorRef{Role: ActorRoleCustomer, ID: id} }

// ProfessionalRef returns an ActorRef for a professional account
func ProfessionalRef(id uint) ActorRef { return ActorRef{Role: ActorRoleProfessional, ID: id} }

// AdminRef returns an ActorRef for a platform operator
func AdminRef(id uint) ActorRef { return ActorRef{Role: ActorRoleAdmin, ID: id} }
