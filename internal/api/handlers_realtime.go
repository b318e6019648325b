package api

import "net/http"

func (s *Server) realtimeWS(w http.ResponseWriter, r *http.Request) {
	s.realtime.ServeWS(w, r, identityFromContext(r.Context()).UserID)
}
