package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/estimator/internal/export"
	"github.com/Simplici0/estimator/internal/session"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	st, err := s.sessions.Create(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondSession(w, r, http.StatusCreated, st)
}

func (s *server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	st, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondSession(w, r, http.StatusOK, st)
}

func (s *server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handlePanelsPut(w http.ResponseWriter, r *http.Request) {
	var patch panelsPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.updateSession(w, r, http.StatusOK, func(st *session.State) error {
		if patch.VideoTech != nil {
			st.Panels.VideoTech = *patch.VideoTech
		}
		if patch.WebMobile != nil {
			st.Panels.WebMobile = *patch.WebMobile
		}
		return nil
	})
}

func (s *server) handleVideoTechPatch(w http.ResponseWriter, r *http.Request) {
	var patch videoTechPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.updateSession(w, r, http.StatusOK, func(st *session.State) error {
		return patch.apply(&st.VideoTech)
	})
}

func (s *server) handleVideoTechReset(w http.ResponseWriter, r *http.Request) {
	s.updateSession(w, r, http.StatusOK, func(st *session.State) error {
		st.VideoTech.ClearAll()
		return nil
	})
}

func (s *server) handleWebMobilePatch(w http.ResponseWriter, r *http.Request) {
	var patch webMobilePatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.updateSession(w, r, http.StatusOK, func(st *session.State) error {
		return patch.apply(&st.WebMobile)
	})
}

func (s *server) handleWebMobileReset(w http.ResponseWriter, r *http.Request) {
	s.updateSession(w, r, http.StatusOK, func(st *session.State) error {
		st.WebMobile.StartFresh()
		return nil
	})
}

func (s *server) handleThirdPartyAdd(w http.ResponseWriter, r *http.Request) {
	s.updateSession(w, r, http.StatusCreated, func(st *session.State) error {
		st.WebMobile.AddThirdPartyItem()
		return nil
	})
}

func (s *server) handleThirdPartyUpdate(w http.ResponseWriter, r *http.Request) {
	var req thirdPartyPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	itemID := chi.URLParam(r, "itemID")
	s.updateSession(w, r, http.StatusOK, func(st *session.State) error {
		_, err := st.WebMobile.UpdateThirdPartyItem(itemID, req.patch())
		return err
	})
}

func (s *server) handleThirdPartyDelete(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	s.updateSession(w, r, http.StatusOK, func(st *session.State) error {
		return st.WebMobile.RemoveThirdPartyItem(itemID)
	})
}

// handleSessionExport writes a workbook holding the visible estimators.
func (s *server) handleSessionExport(w http.ResponseWriter, r *http.Request) {
	st, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rates, err := s.currentRates(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var vt *export.VideoTechEstimate
	if st.Panels.VideoTech {
		view := newVideoTechView(st.VideoTech, rates.videoTech)
		vt = &export.VideoTechEstimate{Inputs: view.Inputs, Totals: view.Totals}
	}
	var wm *export.WebMobileEstimate
	if st.Panels.WebMobile {
		view := newWebMobileView(st.WebMobile, rates.webMobile)
		wm = &export.WebMobileEstimate{Inputs: view.Inputs, Totals: view.Totals}
	}

	data, err := export.Workbook(vt, wm)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="estimate-%s.xlsx"`, st.ID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("failed to write workbook", zap.Error(err))
	}
}

// updateSession loads the session, applies fn and saves the result. Nothing is
// saved when fn fails.
func (s *server) updateSession(w http.ResponseWriter, r *http.Request, status int, fn func(*session.State) error) {
	st, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := fn(&st); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.sessions.Save(r.Context(), st); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondSession(w, r, status, st)
}

func (s *server) respondSession(w http.ResponseWriter, r *http.Request, status int, st session.State) {
	rates, err := s.currentRates(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, s.logger, status, newSessionView(st, rates))
}
