package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/ranking"
	"github.com/jonathan/candidate-ranker/internal/types"
)

const (
	maxRankLimit          = 500
	defaultShortlistLimit = 10
	maxTopSkills          = 50
)

// ShortlistRequest asks for the top candidates of several job descriptions.
type ShortlistRequest struct {
	JobDescriptionIDs []string `json:"job_description_ids" validate:"required,min=1,max=20,dive,uuid"`
	Limit             int      `json:"limit" validate:"omitempty,min=1,max=100"`
}

// ListJobDescriptionsResponse represents the response for listing job descriptions
type ListJobDescriptionsResponse struct {
	JobDescriptions []types.JobDescription `json:"job_descriptions"`
	Count           int                    `json:"count"`
	Limit           int                    `json:"limit"`
	Offset          int                    `json:"offset"`
}

// ShortlistResponse wraps the per-job shortlists.
type ShortlistResponse struct {
	Shortlists []types.JobShortlist `json:"shortlists"`
}

// parseQueryInt parses an integer query parameter, falling back to defaultValue
// for missing or invalid input and capping at maxValue when maxValue > 0.
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// decodeCriteria reads raw criteria from the query string (GET) or JSON body (POST).
func (s *Server) decodeCriteria(r *http.Request) (types.RawCriteria, error) {
	var raw types.RawCriteria
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return raw, &ErrValidation{Field: "body", Message: "invalid JSON"}
		}
	} else {
		q := r.URL.Query()
		raw.Search = q.Get("search")
		raw.Skills = q.Get("skills")
		raw.MinExperience = types.LooseString(q.Get("min_experience"))
	}

	if err := s.validator.Struct(raw); err != nil {
		return raw, validationError(err)
	}
	return raw, nil
}

// handleRankCandidates ranks the pool against ad-hoc criteria.
func (s *Server) handleRankCandidates(w http.ResponseWriter, r *http.Request) {
	raw, err := s.decodeCriteria(r)
	if err != nil {
		s.errorFromErr(w, err, "Invalid criteria")
		return
	}

	ranked, err := s.ranker.Screen(r.Context(), raw)
	if err != nil {
		s.errorFromErr(w, err, "Failed to rank candidates")
		return
	}

	if limit := parseQueryInt(r, "limit", 0, maxRankLimit); limit > 0 {
		ranked.Candidates = ranking.Top(ranked, limit)
	}

	s.jsonResponse(w, http.StatusOK, ranked)
}

// handleListJobDescriptions lists job descriptions newest first.
func (s *Server) handleListJobDescriptions(w http.ResponseWriter, r *http.Request) {
	page := types.Page{
		Limit:  parseQueryInt(r, "limit", types.DefaultPageLimit, types.MaxPageLimit),
		Offset: parseQueryInt(r, "offset", 0, 0),
	}.Normalize()

	jobs, total, err := s.ranker.ListJobDescriptions(r.Context(), page)
	if err != nil {
		s.errorFromErr(w, err, "Failed to list job descriptions")
		return
	}

	s.jsonResponse(w, http.StatusOK, ListJobDescriptionsResponse{
		JobDescriptions: jobs,
		Count:           total,
		Limit:           page.Limit,
		Offset:          page.Offset,
	})
}

// handleGetJobDescription retrieves a job description by its ID
func (s *Server) handleGetJobDescription(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job description ID")
		return
	}

	jd, err := s.ranker.GetJobDescription(r.Context(), id)
	if err != nil {
		s.errorFromErr(w, jobNotFound(err, id), "Failed to get job description")
		return
	}

	s.jsonResponse(w, http.StatusOK, jd)
}

// handleRankForJobDescription ranks the pool against a job description's requirements.
func (s *Server) handleRankForJobDescription(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job description ID")
		return
	}

	limit := parseQueryInt(r, "limit", 0, maxRankLimit)
	shortlist, err := s.ranker.ScreenForJob(r.Context(), id, limit)
	if err != nil {
		s.errorFromErr(w, jobNotFound(err, id), "Failed to rank candidates")
		return
	}

	s.jsonResponse(w, http.StatusOK, shortlist)
}

// handleShortlists ranks the pool against several job descriptions at once.
func (s *Server) handleShortlists(w http.ResponseWriter, r *http.Request) {
	var req ShortlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorFromErr(w, validationError(err), "Invalid shortlist request")
		return
	}

	ids := make([]uuid.UUID, 0, len(req.JobDescriptionIDs))
	for _, raw := range req.JobDescriptionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid job description ID: "+raw)
			return
		}
		ids = append(ids, id)
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultShortlistLimit
	}

	shortlists, err := s.ranker.Shortlist(r.Context(), ids, limit)
	if err != nil {
		s.errorFromErr(w, err, "Failed to build shortlists")
		return
	}

	s.jsonResponse(w, http.StatusOK, ShortlistResponse{Shortlists: shortlists})
}

// handleAnalytics returns pool statistics for the dashboard header.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	top := parseQueryInt(r, "top", 0, maxTopSkills)

	stats, err := s.analytics.Dashboard(r.Context(), top)
	if err != nil {
		s.errorFromErr(w, err, "Failed to compute analytics")
		return
	}

	s.jsonResponse(w, http.StatusOK, stats)
}
