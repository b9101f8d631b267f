package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/handler"
)

// RegisterShows registers the show listing and the booking form.
func RegisterShows(e *echo.Echo, h *handler.Handler, cached, limited echo.MiddlewareFunc) {
    e.GET("/shows", h.Shows, cached)
    e.GET("/shows/create", h.CreateShowForm)
    e.POST("/shows/create", h.CreateShow, limited)
}
