// Package identity resolves the wallet address a request acts for.
//
// The address comes from the server session set at wallet login, or from the
// X-Wallet-Address header. It is normalized and stored per request in fiber locals:
//
//	app.Use(identity.Middleware)
//
//	func handle(c *fiber.Ctx) error {
//		caller := identity.FromCtx(c)
//		...
//	}
package identity

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dreamboard/dreamboard/internal/apperr"
	"github.com/dreamboard/dreamboard/internal/web/session"
)

const (
	// HeaderWalletAddress carries the caller's wallet address for clients without a session.
	HeaderWalletAddress = "X-Wallet-Address"

	localsKey = "identity"
)

// ErrInvalidAddress is returned for strings that are not a wallet address.
var ErrInvalidAddress = apperr.New(apperr.ErrValidation, "Invalid wallet address")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Identity is the caller of a request. The zero value is an anonymous caller.
type Identity struct {
	Address string `json:"address"`
}

// Authenticated reports whether the caller presented a wallet address.
func (i Identity) Authenticated() bool {
	return i.Address != ""
}

// Is reports whether the caller is the given, already normalized, address.
func (i Identity) Is(address string) bool {
	return i.Authenticated() && i.Address == address
}

// Normalize trims and lowercases an address and checks the wallet format.
func Normalize(address string) (string, error) {
	address = strings.ToLower(strings.TrimSpace(address))

	if err := validate.Var(address, "required,eth_addr"); err != nil {
		return "", ErrInvalidAddress
	}

	return address, nil
}

// Middleware resolves the caller identity and stores it in the request locals.
// An invalid address leaves the caller anonymous.
func Middleware(c *fiber.Ctx) error {
	c.Locals(localsKey, resolve(c))

	return c.Next()
}

// FromCtx returns the caller identity of the request.
func FromCtx(c *fiber.Ctx) Identity {
	if id, ok := c.Locals(localsKey).(Identity); ok {
		return id
	}

	return Identity{}
}

func resolve(c *fiber.Ctx) Identity {
	if sessionID := c.Cookies(session.CookieName); sessionID != "" {
		data := new(session.Data)
		if err := data.Read(sessionID); err == nil {
			if address, err := Normalize(data.Address); err == nil {
				return Identity{Address: address}
			}
		}
	}

	header := c.Get(HeaderWalletAddress)
	if header == "" {
		return Identity{}
	}

	address, err := Normalize(header)
	if err != nil {
		log.Debug().Str("header", header).Msg("ignoring invalid wallet address header")
		return Identity{}
	}

	return Identity{Address: address}
}
