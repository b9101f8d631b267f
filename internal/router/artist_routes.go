package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/handler"
)

// RegisterArtists registers the artist pages.
func RegisterArtists(e *echo.Echo, h *handler.Handler, cached, limited echo.MiddlewareFunc) {
    g := e.Group("/artists")
    g.GET("", h.Artists, cached)
    g.POST("/search", h.SearchArtists)
    g.GET("/create", h.CreateArtistForm)
    g.POST("/create", h.CreateArtist, limited)
    g.GET("/:id", h.ShowArtist, cached)
    g.GET("/:id/edit", h.EditArtistForm)
    g.POST("/:id/edit", h.EditArtist, limited)
    g.GET("/:id/delete", h.DeleteArtist, limited)
    g.DELETE("/:id/delete", h.DeleteArtist, limited)
    g.GET("/:id/book", h.BookArtistForm)
    g.POST("/:id/book", h.BookArtist, limited)
}
