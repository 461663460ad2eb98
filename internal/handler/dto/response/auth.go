package response

import (
	"bookstand/internal/usecase/queries"
)

type AuthResponse struct {
	User *queries.AuthorizedUserView `json:"user"`
}

func FromAuthResult(user *queries.AuthorizedUserView) AuthResponse {
	return AuthResponse{User: user}
}
