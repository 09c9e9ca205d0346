package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// UsersHandler serves the public credential endpoints.
type UsersHandler struct {
	AccountService *service.AccountService
}

// HandleRegister handles POST /users
//
//	@Summary		Register
//	@Description	Creates an unverified account and emails a verification link to {frontBaseUrl}/auth/verify_email/{code}.
//	@Description	If the email cannot be delivered the account is not kept.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	accountsdk.Account
//	@Failure		400		{object}	accountsdk.ErrorResponse	"invalid_request"
//	@Failure		409		{object}	accountsdk.ErrorResponse	"email_taken"
//	@Failure		500		{object}	accountsdk.ErrorResponse	"server_error"
//	@Router			/users [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	account, err := h.AccountService.Register(r.Context(), service.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Country:      req.Country,
		Image:        req.Image,
		FrontBaseURL: req.FrontBaseURL,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAccount(account))
}

// HandleVerify handles GET /users/verify/{code}
//
//	@Summary		Verify email
//	@Description	Consumes a verification code and marks its account verified. Each code works once.
//	@Tags			Users
//	@Produce		json
//	@Param			code	path		string	true	"Code from the verification link"
//	@Success		200		{object}	accountsdk.Account
//	@Failure		401		{object}	accountsdk.ErrorResponse	"invalid_code"
//	@Failure		500		{object}	accountsdk.ErrorResponse	"server_error"
//	@Router			/users/verify/{code} [get].
func (h *UsersHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	account, err := h.AccountService.VerifyEmail(r.Context(), r.PathValue("code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccount(account))
}

// HandleLogin handles POST /users/login
//
//	@Summary		Log in
//	@Description	Exchanges email and password for a bearer token. Unknown emails and wrong passwords get the same response.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.LoginRequest		true	"Credentials"
//	@Success		201		{object}	accountsdk.LoginResponse	"user, token, expiresAt"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	accountsdk.ErrorResponse	"invalid_credentials or email_not_verified"
//	@Failure		500		{object}	accountsdk.ErrorResponse	"server_error"
//	@Router			/users/login [post].
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	res, err := h.AccountService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, accountsdk.LoginResponse{
		User:      toAccount(res.Account),
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
}

// HandleResetRequest handles POST /users/reset_password
//
//	@Summary		Request password reset
//	@Description	Emails a link to {frontBaseUrl}/auth/reset_password/{code} to the account owner.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.ResetRequest	true	"Email and frontend base URL"
//	@Success		201		{object}	accountsdk.Account
//	@Failure		400		{object}	accountsdk.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	accountsdk.ErrorResponse	"invalid_credentials"
//	@Failure		500		{object}	accountsdk.ErrorResponse	"server_error"
//	@Router			/users/reset_password [post].
func (h *UsersHandler) HandleResetRequest(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.ResetRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	account, err := h.AccountService.RequestPasswordReset(r.Context(), req.Email, req.FrontBaseURL)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAccount(account))
}

// HandleResetPassword handles POST /users/reset_password/{code}
//
//	@Summary		Reset password
//	@Description	Consumes a reset code and replaces the account's password. Each code works once.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			code	path		string							true	"Code from the reset link"
//	@Param			request	body		accountsdk.ResetPasswordRequest	true	"New password"
//	@Success		201		{object}	accountsdk.Account
//	@Failure		400		{object}	accountsdk.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	accountsdk.ErrorResponse	"invalid_code"
//	@Failure		500		{object}	accountsdk.ErrorResponse	"server_error"
//	@Router			/users/reset_password/{code} [post].
func (h *UsersHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	account, err := h.AccountService.ResetPassword(r.Context(), r.PathValue("code"), req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAccount(account))
}
