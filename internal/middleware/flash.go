package middleware

import (
    "log/slog"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/fyyur/internal/utils"
)

const (
    // FlashCookie carries the signed pending messages between a form POST
    // and the page it redirects to.
    FlashCookie = "fyyur_flash"
    flashKey    = "flash"
    flashTTL    = 5 * time.Minute
)

// Flasher reads and writes one-shot flash messages.
type Flasher struct {
    secret string
    secure bool
}

// NewFlasher returns a Flasher signing cookies with secret.  secure marks
// the cookie Secure so it is only sent over HTTPS.
func NewFlasher(secret string, secure bool) *Flasher {
    return &Flasher{secret: secret, secure: secure}
}

// Middleware loads pending messages into the context and clears the cookie,
// so each message is shown exactly once.
func (f *Flasher) Middleware() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ck, err := c.Cookie(FlashCookie)
            if err == nil && ck.Value != "" {
                if msgs, err := utils.ParseFlashToken(f.secret, ck.Value); err == nil {
                    c.Set(flashKey, msgs)
                } else {
                    slog.Debug("dropping invalid flash cookie", "error", err)
                }
                c.SetCookie(f.cookie("", -1))
            }
            return next(c)
        }
    }
}

// Add queues msg for the next rendered page.  Messages added during the
// same request accumulate.
func (f *Flasher) Add(c echo.Context, msg string) error {
    pending, _ := c.Get(pendingKey).([]string)
    pending = append(pending, msg)
    c.Set(pendingKey, pending)

    raw, err := utils.NewFlashToken(f.secret, pending, flashTTL)
    if err != nil {
        return err
    }
    dropSetCookie(c.Response().Header(), FlashCookie)
    c.SetCookie(f.cookie(raw, int(flashTTL/time.Second)))
    return nil
}

const pendingKey = "flash_pending"

func (f *Flasher) cookie(value string, maxAge int) *http.Cookie {
    return &http.Cookie{
        Name:     FlashCookie,
        Value:    value,
        Path:     "/",
        MaxAge:   maxAge,
        HttpOnly: true,
        Secure:   f.secure,
        SameSite: http.SameSiteLaxMode,
    }
}

// dropSetCookie removes earlier Set-Cookie lines for name so the latest
// value is the only one sent.
func dropSetCookie(h http.Header, name string) {
    lines := h.Values("Set-Cookie")
    if len(lines) == 0 {
        return
    }
    h.Del("Set-Cookie")
    for _, l := range lines {
        if strings.HasPrefix(l, name+"=") {
            continue
        }
        h.Add("Set-Cookie", l)
    }
}

// FlashMessages returns the messages loaded for the current request.
func FlashMessages(c echo.Context) []string {
    msgs, _ := c.Get(flashKey).([]string)
    return msgs
}
