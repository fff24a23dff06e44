package model

type RoleKind string // 사용자 권한 종류

const (
	RoleDiner      RoleKind = "diner"      // 주문 고객
	RoleFranchisee RoleKind = "franchisee" // 가맹점 관리자 (가맹점 단위)
	RoleAdmin      RoleKind = "admin"      // 전체 관리자
)

func (k RoleKind) Valid() bool {
	switch k {
	case RoleDiner, RoleFranchisee, RoleAdmin:
		return true
	}
	return false
}

// Role is a tagged union: Diner, Admin, or FranchiseAdmin(franchiseID).
// FranchiseID is zero for every kind except RoleFranchisee.
type Role struct {
	Kind        RoleKind `json:"role"`
	FranchiseID uint     `json:"objectId,omitempty"`
}

func Diner() Role {
	return Role{Kind: RoleDiner}
}

func Admin() Role {
	return Role{Kind: RoleAdmin}
}

func FranchiseAdmin(franchiseID uint) Role {
	return Role{Kind: RoleFranchisee, FranchiseID: franchiseID}
}

// HasRole reports whether user holds kind. With a scope, a franchisee role only
// matches when it is bound to that franchise; scope is ignored for other kinds.
func HasRole(user *User, kind RoleKind, scope ...uint) bool {
	if user == nil {
		return false
	}
	for _, r := range user.Roles {
		if r.Kind != kind {
			continue
		}
		if kind == RoleFranchisee && len(scope) > 0 && r.FranchiseID != scope[0] {
			continue
		}
		return true
	}
	return false
}

// RoleAssignment is a role requested at user creation. Object names the
// franchise for RoleFranchisee and is resolved to an id when stored.
type RoleAssignment struct {
	Role   RoleKind `json:"role"`
	Object string   `json:"object,omitempty"`
}
