package api

import (
	"net/http"
)

func (s *Server) getCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	user, err := s.repos.Users.GetByID(r.Context(), userID)
	if err != nil {
		s.respondRepoError(w, err, "User not found", "failed to get user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
