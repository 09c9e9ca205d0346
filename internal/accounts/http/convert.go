package http

import (
	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
)

func toAccount(a domain.Account) accountsdk.Account {
	return accountsdk.Account{
		ID:         a.ID,
		Email:      a.Email,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Country:    a.Country,
		Image:      a.Image,
		IsVerified: a.IsVerified,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toAccountWithCodes(a domain.AccountWithCodes) accountsdk.AccountWithCodes {
	codes := make([]accountsdk.PendingCode, len(a.PendingCodes))
	for i, c := range a.PendingCodes {
		codes[i] = accountsdk.PendingCode{
			Purpose:   c.Purpose.String(),
			CreatedAt: c.CreatedAt,
			ExpiresAt: c.ExpiresAt,
		}
	}
	return accountsdk.AccountWithCodes{
		Account:      toAccount(a.Account),
		PendingCodes: codes,
	}
}

func toIdentity(id service.Identity) accountsdk.Identity {
	return accountsdk.Identity{
		ID:        id.ID,
		Email:     id.Email,
		FirstName: id.FirstName,
		LastName:  id.LastName,
		IssuedAt:  id.IssuedAt,
		ExpiresAt: id.ExpiresAt,
	}
}

func toProfileUpdate(req accountsdk.UpdateProfileRequest) domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Country:   req.Country,
		Image:     req.Image,
	}
}
