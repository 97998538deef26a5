package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"github.com/mgprofile/mgprofile/pkg/utils/errutil"
	"github.com/mgprofile/mgprofile/pkg/utils/safe"
)

type handoffRequest struct {
	UserID    string         `json:"userId" validate:"required"`
	Summary   *model.Summary `json:"summary" validate:"required"`
	ProfileID string         `json:"profileId" validate:"required"`
	RunID     string         `json:"runId" validate:"required"`
	Module    string         `json:"module" validate:"required"`
}

type handoffResponse struct {
	Success        bool            `json:"success"`
	RecordKey      model.RecordKey `json:"recordKey"`
	SessionUpdated bool            `json:"sessionUpdated"`
}

type userRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type syncResponse struct {
	Success        bool `json:"success"`
	ModulesUpdated int  `json:"modulesUpdated"`
}

type progressRequest struct {
	UserID   string `json:"userId" validate:"required"`
	LastStep *int   `json:"lastStep" validate:"required,min=0"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type validateResponse struct {
	Success       bool                `json:"success"`
	InSync        bool                `json:"inSync"`
	Discrepancies []model.Discrepancy `json:"discrepancies"`
}

type contextResponse struct {
	Context string `json:"context"`
}

// decode reads a JSON body into v and validates its struct tags
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer safe.Close(r.Context(), body)

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return goerr.Wrap(err, "invalid JSON body", goerr.T(model.ErrTagInvalidInput))
	}
	if err := s.validate.Struct(v); err != nil {
		return goerr.Wrap(err, "invalid request", goerr.T(model.ErrTagInvalidInput))
	}
	return nil
}

func userIDParam(r *http.Request) (string, error) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		return "", goerr.New("userId is required", goerr.T(model.ErrTagInvalidInput))
	}
	return userID, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(r.Context(), w, data)
}

func (s *Server) handoffHandler(w http.ResponseWriter, r *http.Request) {
	var req handoffRequest
	if err := s.decode(w, r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}

	result, err := s.sync.Handoff(r.Context(), req.UserID, req.Summary, req.ProfileID, req.RunID, types.ModuleName(req.Module))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}

	writeJSON(w, r, handoffResponse{
		Success:        true,
		RecordKey:      result.RecordKey,
		SessionUpdated: result.SessionUpdated,
	})
}

func (s *Server) syncHandler(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := s.decode(w, r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}

	result, err := s.sync.SyncToSession(r.Context(), req.UserID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}

	writeJSON(w, r, syncResponse{Success: true, ModulesUpdated: result.ModulesUpdated})
}

func (s *Server) progressHandler(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := s.decode(w, r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}

	if err := s.sync.SaveProgress(r.Context(), req.UserID, *req.LastStep); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}

	writeJSON(w, r, successResponse{Success: true})
}

func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}

	profile, err := s.sync.GetCompleteProfile(r.Context(), userID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}

	writeJSON(w, r, profile)
}

func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}

	report, err := s.sync.ValidateSync(r.Context(), userID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, 0)
		return
	}

	writeJSON(w, r, validateResponse{
		Success:       true,
		InSync:        report.InSync(),
		Discrepancies: report.Discrepancies,
	})
}

// contextHandler accepts repeated term and element parameters
func (s *Server) contextHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	useCase, err := types.ParseUseCase(q.Get("useCase"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid useCase", goerr.T(model.ErrTagInvalidInput)), 0)
		return
	}

	criteria := model.Criteria{
		Terms:    q["term"],
		Subject:  q.Get("subject"),
		Grade:    q.Get("grade"),
		Elements: q["element"],
	}

	writeJSON(w, r, contextResponse{
		Context: s.retrieval.BuildContext(r.Context(), useCase, criteria),
	})
}
