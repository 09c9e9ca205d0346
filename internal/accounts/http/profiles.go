package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// ProfilesHandler serves account CRUD for authenticated callers.
type ProfilesHandler struct {
	ProfileService *service.ProfileService
}

// HandleList handles GET /users
//
//	@Summary		List accounts
//	@Description	Returns every account, oldest first, with its outstanding one-time codes. Code values are never included.
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		accountsdk.AccountWithCodes
//	@Failure		401	{object}	accountsdk.ErrorResponse	"invalid_token"
//	@Failure		500	{object}	accountsdk.ErrorResponse	"server_error"
//	@Router			/users [get].
func (h *ProfilesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.ProfileService.ListAccounts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]accountsdk.AccountWithCodes, len(accounts))
	for i, a := range accounts {
		out[i] = toAccountWithCodes(a)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /users/{id}
//
//	@Summary		Get account
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Account ID (ULID)"
//	@Success		200	{object}	accountsdk.Account
//	@Failure		401	{object}	accountsdk.ErrorResponse	"invalid_token"
//	@Failure		404	{object}	accountsdk.ErrorResponse	"account_not_found"
//	@Failure		500	{object}	accountsdk.ErrorResponse	"server_error"
//	@Router			/users/{id} [get].
func (h *ProfilesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	account, err := h.ProfileService.GetAccount(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccount(account))
}

// HandleUpdate handles PUT /users/{id}
//
//	@Summary		Update profile
//	@Description	Changes firstName, lastName, country and image. Omitted fields keep their value.
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Account ID (ULID)"
//	@Param			request	body		accountsdk.UpdateProfileRequest	true	"Fields to change"
//	@Success		200		{object}	accountsdk.Account
//	@Failure		400		{object}	accountsdk.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	accountsdk.ErrorResponse	"invalid_token"
//	@Failure		404		{object}	accountsdk.ErrorResponse	"account_not_found"
//	@Failure		500		{object}	accountsdk.ErrorResponse	"server_error"
//	@Router			/users/{id} [put].
func (h *ProfilesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.UpdateProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	account, err := h.ProfileService.UpdateProfile(r.Context(), r.PathValue("id"), toProfileUpdate(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccount(account))
}

// HandleDelete handles DELETE /users/{id}
//
//	@Summary		Delete account
//	@Description	Removes the account and its one-time codes. Succeeds whether or not the account existed.
//	@Tags			Profiles
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Account ID (ULID)"
//	@Success		204	"Account deleted"
//	@Failure		401	{object}	accountsdk.ErrorResponse	"invalid_token"
//	@Failure		500	{object}	accountsdk.ErrorResponse	"server_error"
//	@Router			/users/{id} [delete].
func (h *ProfilesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ProfileService.DeleteAccount(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
