package domain

const (
	RoleAdmin  = "ADMIN"
	RoleSeller = "SELLER"
	RoleUser   = "USER"
)

// Actor is the authenticated identity performing an operation. Usecases
// receive it explicitly instead of reading ambient request state.
type Actor struct {
	UserID string
	Roles  []string
}

func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// CanManage reports whether the actor may mutate a product owned by ownerID.
func (a Actor) CanManage(ownerID string) bool {
	return a.IsAdmin() || a.UserID == ownerID
}
