package structs

import (
	"time"

	"github.com/google/uuid"

	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

type AuthClaims struct {
	Sub   uuid.UUID       `json:"sub"`
	Email string          `json:"email"`
	Role  tables.UserRole `json:"role"`
	Iat   time.Time       `json:"iat"`
	Exp   time.Time       `json:"exp"`
	Jti   uuid.UUID       `json:"jti"`
}

// IsAdmin reports whether the claims carry the admin role.
func (c *AuthClaims) IsAdmin() bool {
	return c.Role == tables.RoleAdmin
}
