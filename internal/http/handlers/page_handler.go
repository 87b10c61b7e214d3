package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/listing"
	applog "github.com/agustrio1/sveltekit-ecommerce-sub001/internal/log"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/services"
	"github.com/agustrio1/sveltekit-ecommerce-sub001/internal/validate"
)

type PageHandler struct {
	Catalog *services.CatalogService
}

func (h *PageHandler) Home(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "home.load.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the store. Please retry."})
	}
	return render(c, "home", fiber.Map{"Categories": cats})
}

// Products renders the listing page. The address bar is the source of truth:
// state is decoded from it, queried, and the same state drives the page
// links, so a copied URL reproduces the exact view. A failed query renders
// the empty state rather than an error page.
func (h *PageHandler) Products(c *fiber.Ctx) error {
	vals, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		vals = url.Values{}
	}
	state := listing.DecodeQuery(vals)
	params := state.FetchParams()

	res, err := h.Catalog.ListProducts(services.ListQuery{
		Query:         params.Query,
		CategoryID:    params.CategoryID,
		SortBy:        params.SortBy,
		Page:          params.Page,
		PerPage:       params.PerPage,
		WithSoldCount: params.WithSoldCount,
	})
	if err != nil {
		applog.Error(c, "products.page.fail", err, nil)
		res = services.ListResult{Page: state.Page}
	}

	cats, catErr := h.Catalog.ListCategories()
	if catErr != nil {
		applog.Error(c, "products.page.categories.fail", catErr, nil)
	}

	return render(c, "products", fiber.Map{
		"State":      state,
		"Products":   res.Products,
		"Page":       res.Page,
		"TotalPages": res.TotalPages,
		"Total":      res.Total,
		"Empty":      err == nil && res.Total == 0,
		"Failed":     err != nil,
		"Categories": cats,
		"HasPrev":    res.Page > 1,
		"HasNext":    res.Page < res.TotalPages,
		"PrevURL":    pageURL(state, res.Page-1),
		"NextURL":    pageURL(state, res.Page+1),
		"ResetURL":   "/products",
	})
}

func (h *PageHandler) ProductDetail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.GetProductBySlug(slug)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{"P": p})
}

func pageURL(state listing.State, page int) string {
	s := state
	s.GotoPage(page)
	if enc := listing.EncodeQuery(s, nil).Encode(); enc != "" {
		return "/products?" + enc
	}
	return "/products"
}
