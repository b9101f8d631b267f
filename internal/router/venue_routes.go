package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/handler"
)

// RegisterVenues registers the venue pages.  Read pages go through the
// response cache; every write goes through the rate limiter.
func RegisterVenues(e *echo.Echo, h *handler.Handler, cached, limited echo.MiddlewareFunc) {
    g := e.Group("/venues")
    g.GET("", h.Venues, cached)
    g.POST("/search", h.SearchVenues)
    g.GET("/create", h.CreateVenueForm)
    g.POST("/create", h.CreateVenue, limited)
    g.GET("/:id", h.ShowVenue, cached)
    g.GET("/:id/edit", h.EditVenueForm)
    g.POST("/:id/edit", h.EditVenue, limited)
    // Both methods delete: the detail page links with GET and scripts
    // may send DELETE.
    g.GET("/:id/delete", h.DeleteVenue, limited)
    g.DELETE("/:id/delete", h.DeleteVenue, limited)
    g.GET("/:id/book", h.BookVenueForm)
    g.POST("/:id/book", h.BookVenue, limited)
}
