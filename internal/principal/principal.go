// Package principal turns verified access-token claims into the caller's
// external identity.
package principal

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoPrincipal = errors.New("no authenticated principal")

// Principal is what the token vouches for. Role and Affiliation are
// informational only; authorization reads the persisted user.
type Principal struct {
	Subject     string
	Name        string
	Email       string
	Image       string
	Role        string
	Affiliation string
}

// FromClaims maps access-token claims. sub is required.
func FromClaims(claims jwt.MapClaims) (Principal, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Principal{}, errors.New("missing sub claim")
	}
	p := Principal{Subject: sub}
	p.Name, _ = claims["name"].(string)
	p.Email, _ = claims["email"].(string)
	p.Image, _ = claims["picture"].(string)
	p.Role, _ = claims["role"].(string)
	p.Affiliation, _ = claims["hostel"].(string)
	return p, nil
}

// FromContext extracts the principal from the token stored by the JWT
// middleware under the "user" local.
func FromContext(c *fiber.Ctx) (Principal, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Principal{}, ErrNoPrincipal
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, errors.New("invalid claims")
	}
	return FromClaims(claims)
}
