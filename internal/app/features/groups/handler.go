// internal/app/features/groups/handler.go
package groups

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	groupstore "github.com/crackenhq/cracken/internal/app/store/groups"
	"github.com/crackenhq/cracken/internal/app/store/sqldb"
	"github.com/crackenhq/cracken/internal/app/system/apierrors"
	"github.com/crackenhq/cracken/internal/domain/models"
)

// Handler is the shared dependency container for the groups feature: group
// lifecycle, joining by invite code, member listing, and departures.
type Handler struct {
	DB     *sqldb.DB
	Groups *groupstore.Store
	ErrLog *apierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *sqldb.DB, groups *groupstore.Store, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Groups: groups,
		ErrLog: errLog,
		Log:    logger,
	}
}

// groupResponse is the group snapshot returned by every group endpoint.
type groupResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	InviteCode string `json:"invite_code"`
	CreatedAt  string `json:"created_at"`
	CreatedBy  *int64 `json:"created_by"`
}

func toGroupResponse(g models.Group) groupResponse {
	return groupResponse{
		ID:         g.ID,
		Name:       g.Name,
		InviteCode: g.InviteCode,
		CreatedAt:  g.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		CreatedBy:  g.CreatedBy,
	}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// urlID parses an integer URL parameter, 0 and false on malformed input.
func urlID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
