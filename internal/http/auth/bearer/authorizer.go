package bearer

import (
	"fmt"
	"net/http"

	"github.com/imagematrix/matrix-cli/internal/http/modifier"
)

// NewAuthorizer returns a bearer token authorizer.
// A request passes through unmodified when the token is empty.
func NewAuthorizer(token string) modifier.Modifier {
	return &authorizer{token: token}
}

type authorizer struct {
	token string
}

func (a *authorizer) Modify(req *http.Request) error {
	if a.token == "" {
		return nil
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.token))
	return nil
}
