package tables

import (
	"time"

	"github.com/google/uuid"
)

// User is a thin collaborator entity. Credential handling and session
// issuance live outside this service; we only need identity and role.
type User struct {
	tableName struct{}  `bun:"table:users,alias:u"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email,notnull,unique" json:"email"`
	Phone     string    `bun:"phone" json:"phone,omitempty"`
	Role      UserRole  `bun:"role,notnull,default:'customer'" json:"role"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
	RoleSeller   UserRole = "seller"
)
