package server

import "net/http"

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	data := s.newPage(r, "home")
	data.Features = homeFeatures
	s.render(w, data)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, s.newPage(r, "about"))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int) {
	data := s.newPage(r, "error")
	data.Status = status
	s.render(w, data)
}
