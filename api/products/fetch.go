package products

import (
	"net/http"

	"github.com/MonkyMars/gecho"

	"github.com/muhammadMilon/FruitPanda-sub001/handling"
)

// ListProducts returns the active storefront catalog.
func (prm *ProductRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := prm.productService.ListActive(r.Context())
	if err != nil {
		handling.HandleServiceError(err, prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.product.productsFetched"),
		gecho.WithData(map[string]any{
			"products": products,
			"count":    len(products),
		}),
		gecho.Send(),
	)
}
