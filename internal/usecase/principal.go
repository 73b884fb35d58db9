package usecase

import (
	"net/http"
	"sort"

	"ninjashop/internal/domain/model"
)

// 認可の主体。middlewareでセッションから組み立て、usecaseに明示的に渡す。
type Principal struct {
	UserID      int64
	Username    string
	IsSuperuser bool
	SessionID   string
	permissions map[string]struct{}
}

func NewPrincipal(u model.User, sessionID string, codenames []string) Principal {
	perms := make(map[string]struct{}, len(codenames))
	for _, c := range codenames {
		perms[c] = struct{}{}
	}
	return Principal{
		UserID:      u.ID,
		Username:    u.Username,
		IsSuperuser: u.IsSuperuser,
		SessionID:   sessionID,
		permissions: perms,
	}
}

func (p Principal) Authenticated() bool {
	return p.UserID > 0
}

// スーパーユーザーは全権限
func (p Principal) Can(perm string) bool {
	if !p.Authenticated() {
		return false
	}
	if p.IsSuperuser {
		return true
	}
	_, ok := p.permissions[perm]
	return ok
}

// 本人 or 権限持ち
func (p Principal) CanActFor(userID int64, perm string) bool {
	if !p.Authenticated() {
		return false
	}
	return p.UserID == userID || p.Can(perm)
}

func (p Principal) Permissions() []string {
	if p.IsSuperuser {
		out := append([]string(nil), model.AllPermissions...)
		sort.Strings(out)
		return out
	}
	out := make([]string, 0, len(p.permissions))
	for c := range p.permissions {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func requirePerm(p Principal, perm string) error {
	if !p.Authenticated() {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !p.Can(perm) {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}

func requireOwnerOr(p Principal, ownerID int64, perm string) error {
	if !p.Authenticated() {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !p.CanActFor(ownerID, perm) {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}
