package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// tenantFromRequest extracts the company and acting user from the verified
// JWT. AuthRequired has already rejected tokens without a company claim.
func tenantFromRequest(r *http.Request) (companyID string, actorID string, err error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", err
	}

	companyID, _ = claims["company_id"].(string)
	actorID, _ = claims["user_id"].(string)
	return companyID, actorID, nil
}
