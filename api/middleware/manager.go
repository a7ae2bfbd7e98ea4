package middleware

import (
	"github.com/MonkyMars/gecho"

	"github.com/muhammadMilon/FruitPanda-sub001/structs"
)

type Middleware struct {
	cfg    *structs.Config
	logger *gecho.Logger
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger) *Middleware {
	return &Middleware{
		cfg:    cfg,
		logger: logger,
	}
}
