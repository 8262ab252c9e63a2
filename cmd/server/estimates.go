package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Simplici0/estimator/internal/export"
	"github.com/Simplici0/estimator/internal/pricing/videotech"
	"github.com/Simplici0/estimator/internal/pricing/webmobile"
	"github.com/Simplici0/estimator/internal/ratecard"
)

type rateSet struct {
	card      ratecard.Card
	videoTech videotech.Rates
	webMobile webmobile.Rates
}

// currentRates reads the rate card, falling back to the built-in defaults
// when the card has not been seeded.
func (s *server) currentRates(ctx context.Context) (rateSet, error) {
	card, err := s.rates.Get(ctx)
	if errors.Is(err, ratecard.ErrNotFound) {
		s.logger.Warn("rate card not seeded, using defaults")
		card = ratecard.Default()
	} else if err != nil {
		return rateSet{}, err
	}
	return rateSet{
		card:      card,
		videoTech: card.VideoTech(),
		webMobile: card.WebMobile(),
	}, nil
}

type optionsResponse struct {
	VideoTech videotech.Catalog `json:"videoTech"`
	WebMobile webmobile.Catalog `json:"webMobile"`
	Currency  string            `json:"currency"`
}

func (s *server) handleOptions(w http.ResponseWriter, r *http.Request) {
	rates, err := s.currentRates(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, optionsResponse{
		VideoTech: videotech.Options(rates.videoTech),
		WebMobile: webmobile.Options(rates.webMobile),
		Currency:  ratecard.Currency,
	})
}

func (s *server) handleRatesGet(w http.ResponseWriter, r *http.Request) {
	rates, err := s.currentRates(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, rates.card)
}

// handleRatesPut overwrites the fields present in the body; omitted fields
// keep their stored values.
func (s *server) handleRatesPut(w http.ResponseWriter, r *http.Request) {
	card, err := s.rates.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := decodeJSON(r, &card); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.rates.Update(r.Context(), card); err != nil {
		s.writeError(w, r, err)
		return
	}

	updated, err := s.rates.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("rate card updated")
	writeJSON(w, s.logger, http.StatusOK, updated)
}

func (s *server) handleVideoTechEstimate(w http.ResponseWriter, r *http.Request) {
	var patch videoTechPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	in := videotech.DefaultInputs()
	if err := patch.apply(&in); err != nil {
		s.writeError(w, r, err)
		return
	}

	rates, err := s.currentRates(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view := newVideoTechView(in, rates.videoTech)

	if wantsText(r) {
		writeText(w, http.StatusOK)
		if err := export.WriteVideoTechText(w, export.VideoTechEstimate{Inputs: view.Inputs, Totals: view.Totals}); err != nil {
			s.logger.Error("failed to write text estimate", zap.Error(err))
		}
		return
	}
	writeJSON(w, s.logger, http.StatusOK, view)
}

// handleWebMobileEstimate computes an estimate from the body laid over the
// default inputs. The defaults include the two starter third-party services
// ($150 in total); send "thirdPartyItems": [] to price without them.
func (s *server) handleWebMobileEstimate(w http.ResponseWriter, r *http.Request) {
	var patch webMobilePatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	in := webmobile.DefaultInputs()
	if err := patch.apply(&in); err != nil {
		s.writeError(w, r, err)
		return
	}

	rates, err := s.currentRates(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view := newWebMobileView(in, rates.webMobile)

	if wantsText(r) {
		writeText(w, http.StatusOK)
		if err := export.WriteWebMobileText(w, export.WebMobileEstimate{Inputs: view.Inputs, Totals: view.Totals}); err != nil {
			s.logger.Error("failed to write text estimate", zap.Error(err))
		}
		return
	}
	writeJSON(w, s.logger, http.StatusOK, view)
}

func (s *server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	webTier, err := tierParam(r, "webTier")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	mobTier, err := tierParam(r, "mobTier")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, newFeaturesView(webTier, mobTier))
}

// tierParam reads a tier query parameter; absent means the default tier.
func tierParam(r *http.Request, name string) (webmobile.Tier, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return webmobile.TierBasicPlus, nil
	}
	t := webmobile.Tier(raw)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %s %q", webmobile.ErrUnknownTier, name, raw)
	}
	return t, nil
}
