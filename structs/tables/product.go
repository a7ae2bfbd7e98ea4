package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	tableName struct{}  `bun:"table:products,alias:p"`
	ID        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name      string    `bun:"name,notnull" json:"name" validate:"required,min=2,max=200"`
	NameBn    string    `bun:"name_bn" json:"name_bn,omitempty"`
	Image     string    `bun:"image" json:"image,omitempty"`

	Price decimal.Decimal `bun:"price,notnull,type:numeric(12,2)" json:"price"`

	// Stock is on-hand inventory; Reserved counts units held by pending
	// orders and released again on cancellation.
	Stock    int  `bun:"stock,notnull,default:0" json:"stock"`
	Reserved int  `bun:"reserved,notnull,default:0" json:"reserved"`
	IsActive bool `bun:"is_active,notnull,default:true" json:"is_active"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
