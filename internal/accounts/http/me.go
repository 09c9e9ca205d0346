package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// MeHandler returns the caller's identity straight from the verified token.
type MeHandler struct{}

// ServeHTTP handles GET /users/me
//
//	@Summary		Current identity
//	@Description	Returns the identity embedded in the bearer token. The account is not reloaded, so profile changes made after login are not reflected.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	accountsdk.Identity
//	@Failure		401	{object}	accountsdk.ErrorResponse	"invalid_token"
//	@Router			/users/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok || claims.Subject == "" {
		accountsdk.ErrInvalidToken.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toIdentity(service.IdentityFromClaims(claims)))
}
