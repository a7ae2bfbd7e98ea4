package tables

import (
	"time"

	"github.com/google/uuid"
)

type Receipt struct {
	tableName     struct{}  `bun:"table:receipts,alias:rc"`
	Id            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ReceiptNumber string    `bun:"receipt_number,notnull,unique" json:"receipt_number"`

	// One receipt per order, enforced by a unique index on order_id.
	OrderId     uuid.UUID `bun:"order_id,notnull,unique,type:uuid" json:"order_id"`
	OrderNumber string    `bun:"order_number,notnull" json:"order_number"`
	CustomerId  uuid.UUID `bun:"customer_id,notnull,type:uuid" json:"customer_id"`

	// Frozen snapshots taken at generation time. These deliberately do not
	// alias the live Order fields: later order mutation leaves them intact.
	CustomerInfo    CustomerInfo    `bun:"customer_info,notnull,type:jsonb" json:"customer_info"`
	Items           []OrderItem     `bun:"items,notnull,type:jsonb" json:"items"`
	Pricing         Pricing         `bun:"pricing,notnull,type:jsonb" json:"pricing"`
	Payment         PaymentInfo     `bun:"payment,notnull,type:jsonb" json:"payment"`
	ShippingAddress ShippingAddress `bun:"shipping_address,notnull,type:jsonb" json:"shipping_address"`

	// Populated in a second phase once the PDF write completes. A receipt may
	// transiently exist without a path; callers retry via backfill.
	PdfPath string `bun:"pdf_path" json:"pdf_path,omitempty"`
	PdfUrl  string `bun:"pdf_url" json:"pdf_url,omitempty"`

	Status        ReceiptStatus `bun:"status,notnull,default:'generated'" json:"status"`
	DownloadCount int           `bun:"download_count,notnull,default:0" json:"download_count"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

type ReceiptStatus string

// Receipt status advances monotonically: generated -> sent -> downloaded.
const (
	ReceiptStatusGenerated  ReceiptStatus = "generated"
	ReceiptStatusSent       ReceiptStatus = "sent"
	ReceiptStatusDownloaded ReceiptStatus = "downloaded"
)
