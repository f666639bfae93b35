package structs

import (
	"time"

	"github.com/google/uuid"
)

// AuthClaims is the identity claim set issued by the external session
// provider. This service trusts it as-is; it never issues tokens itself.
type AuthClaims struct {
	Sub        uuid.UUID `json:"sub"`
	BusinessId uuid.UUID `json:"business_id"`
	Email      string    `json:"email"`
	Iat        time.Time `json:"iat"`
	Exp        time.Time `json:"exp"`
	Jti        uuid.UUID `json:"jti"`
}
