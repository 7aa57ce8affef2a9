package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Roster actions addressable under /activities/{name}/.
const (
	actionSignup = "signup"
	actionRemove = "remove"
)

const activitiesPrefix = "/activities/"

// membershipRequest is the decoded form of
// POST /activities/{activity_name}/{signup|remove}?email={email}.
type membershipRequest struct {
	Activity string
	Action   string
	Email    string
}

// parseMembershipRoute extracts the activity name and action from the path.
// The name is unescaped per segment so %20 and %2F round-trip.
func parseMembershipRoute(r *http.Request) (membershipRequest, error) {
	const op = "api.parse_route"

	rest := strings.TrimPrefix(r.URL.EscapedPath(), activitiesPrefix)
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		return membershipRequest{}, NewKind(op, ErrRouteNotFound)
	}
	switch parts[1] {
	case actionSignup, actionRemove:
	default:
		return membershipRequest{}, NewKind(op, ErrRouteNotFound)
	}

	name, err := url.PathUnescape(parts[0])
	if err != nil {
		return membershipRequest{}, WrapKind(op, ErrBadRequest, fmt.Errorf("invalid activity name encoding"))
	}
	return membershipRequest{Activity: name, Action: parts[1]}, nil
}

// bindQuery fills the query-string inputs.
func (m *membershipRequest) bindQuery(r *http.Request) {
	m.Email = r.URL.Query().Get("email")
}

func (m membershipRequest) validate() error {
	if strings.TrimSpace(m.Email) == "" {
		return fmt.Errorf("email query parameter is required")
	}
	return nil
}
