package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/persona-forge/internal/pipeline"
	"github.com/jonathan/persona-forge/internal/types"
)

// SynthesizeRequest represents the request body for /v1/personas/synthesize
type SynthesizeRequest struct {
	Conversation *types.ConversationData    `json:"conversation"`
	Insights     *types.PersonalityInsights `json:"insights"`
}

// RegenerateFacetsRequest represents the request body for
// /v1/personas/facets/regenerate. The caller sends back the spec and profile
// from a previous synthesis along with the facets to re-roll.
type RegenerateFacetsRequest struct {
	Spec         *types.PersonaSpec      `json:"spec"`
	Profile      *types.PersonaProfile   `json:"profile"`
	Conversation *types.ConversationData `json:"conversation,omitempty"`
	Facets       []types.Facet           `json:"facets"`
	Adjustments  map[types.Facet]string  `json:"adjustments,omitempty"`
}

func (r *SynthesizeRequest) validate() error {
	if r.Conversation == nil {
		return &ErrValidation{Field: "conversation", Message: "is required"}
	}
	if r.Conversation.PrimaryGoal == "" {
		return &ErrValidation{Field: "conversation.primary_goal", Message: "is required"}
	}
	if r.Insights == nil {
		return &ErrValidation{Field: "insights", Message: "is required"}
	}
	return nil
}

func (r *RegenerateFacetsRequest) validate() error {
	if r.Spec == nil {
		return &ErrValidation{Field: "spec", Message: "is required"}
	}
	if r.Profile == nil {
		return &ErrValidation{Field: "profile", Message: "is required"}
	}
	if len(r.Facets) == 0 {
		return &ErrValidation{Field: "facets", Message: "at least one facet is required"}
	}
	for _, f := range r.Facets {
		if !f.Valid() {
			return &ErrValidation{Field: "facets", Message: "unknown facet " + string(f)}
		}
	}
	return nil
}

// handleSynthesize runs a synthesis to completion and returns the profile.
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	profile, err := s.synth.Synthesize(r.Context(), req.Conversation, req.Insights, nil)
	if err != nil {
		s.log.Error("synthesis failed", "error", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleSynthesizeStream runs a synthesis and streams progress via SSE,
// finishing with the full profile.
func (s *Server) handleSynthesizeStream(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	var runID string
	profile, err := s.synth.Synthesize(r.Context(), req.Conversation, req.Insights,
		func(event pipeline.ProgressEvent) {
			runID = event.RunID
			if err := sse.WriteEvent("progress", event); err != nil {
				s.log.Warn("writing SSE event", "error", err)
			}
		})
	if err != nil {
		s.log.Error("synthesis failed", "error", err)
		sse.WriteError(err.Error())
		return
	}

	if err := sse.WriteProfile(profile); err != nil {
		s.log.Warn("writing profile event", "error", err)
		return
	}
	sse.WriteComplete(runID, "completed")
}

// handleRegenerateFacets re-rolls the requested facets of an existing profile.
func (s *Server) handleRegenerateFacets(w http.ResponseWriter, r *http.Request) {
	var req RegenerateFacetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	profile, err := s.synth.RegenerateFacets(r.Context(), req.Spec, req.Profile, req.Conversation,
		pipeline.RegenerateRequest{Facets: req.Facets, Adjustments: req.Adjustments}, nil)
	if err != nil {
		s.log.Error("facet regeneration failed", "error", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}
