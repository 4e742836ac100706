package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/analyzer"
	"github.com/jonathan/resume-analyzer/internal/chat"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/heuristics"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// maxUploadBytes caps resume uploads at 12 MiB.
const maxUploadBytes = 12 << 20

type uploadResponse struct {
	AnalysisID string          `json:"analysis_id,omitempty"`
	Filename   string          `json:"filename"`
	Text       string          `json:"text"`
	WordCount  int             `json:"word_count"`
	CharCount  int             `json:"char_count"`
	Insights   *types.Insights `json:"insights"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "missing 'file' field")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	text := extraction.ExtractText(header.Filename, data)
	if strings.TrimSpace(text) == "" {
		errorResponse(w, http.StatusUnprocessableEntity, "could not extract text from file")
		return
	}

	resp := uploadResponse{
		Filename:  header.Filename,
		Text:      text,
		WordCount: heuristics.CountWords(text),
		CharCount: len(text),
		Insights:  s.analyzer.BuildHeuristicInsights(text, ""),
	}

	if s.db != nil {
		rec := &db.AnalysisRecord{
			Filename:      header.Filename,
			Mimetype:      header.Header.Get("Content-Type"),
			ExtractedText: text,
			WordCount:     resp.WordCount,
			CharCount:     resp.CharCount,
		}
		if email := r.FormValue("email"); email != "" {
			userID, err := s.db.EnsureUser(r.Context(), email, r.FormValue("name"))
			if err != nil {
				log.Printf("failed to ensure user: %v", err)
			} else {
				rec.UserID = &userID
			}
		}
		id, err := s.db.CreateAnalysis(r.Context(), rec)
		if err != nil {
			log.Printf("failed to store upload: %v", err)
		} else {
			resp.AnalysisID = id.String()
		}
	}

	jsonResponse(w, http.StatusOK, resp)
}

type analyzeRequest struct {
	AnalysisID     string `json:"analysis_id,omitempty"`
	ResumeText     string `json:"resume_text,omitempty"`
	JobDescription string `json:"job_description,omitempty"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,url"`
}

type analyzeResponse struct {
	AnalysisID string           `json:"analysis_id,omitempty"`
	Result     *analyzer.Result `json:"result"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	text := req.ResumeText
	var recordID uuid.UUID

	if text == "" && req.AnalysisID != "" {
		if s.db == nil {
			errorResponse(w, http.StatusBadRequest, "analysis_id requires a configured database")
			return
		}
		id, err := uuid.Parse(req.AnalysisID)
		if err != nil {
			errorResponse(w, http.StatusBadRequest, "invalid analysis_id")
			return
		}
		rec, err := s.db.GetAnalysis(r.Context(), id)
		if err != nil {
			errorResponse(w, http.StatusInternalServerError, "failed to load analysis")
			return
		}
		if rec == nil {
			errorResponse(w, http.StatusNotFound, "analysis not found")
			return
		}
		text = rec.ExtractedText
		recordID = rec.ID
	}

	if strings.TrimSpace(text) == "" {
		errorResponse(w, http.StatusBadRequest, "resume_text or analysis_id is required")
		return
	}

	jobDescription := req.JobDescription
	if jobDescription == "" && req.JobURL != "" {
		fetched, err := extraction.FetchJobPosting(r.Context(), req.JobURL)
		if err != nil {
			errorResponse(w, http.StatusBadGateway, "failed to fetch job posting: "+err.Error())
			return
		}
		jobDescription = fetched
	}

	result := s.analyzer.Analyze(r.Context(), text, jobDescription)

	resp := analyzeResponse{Result: result}
	if s.db != nil && recordID != uuid.Nil {
		if err := s.db.UpdateAnalysisResult(r.Context(), recordID, jobDescription, result.Parsed); err != nil {
			log.Printf("failed to store analysis result: %v", err)
		}
		resp.AnalysisID = recordID.String()
	} else if s.db != nil {
		now := time.Now()
		rec := &db.AnalysisRecord{
			ExtractedText:  text,
			JobDescription: jobDescription,
			Result:         result.Parsed,
			WordCount:      result.Parsed.WordCount,
			CharCount:      len(text),
			AnalyzedAt:     &now,
		}
		id, err := s.db.CreateAnalysis(r.Context(), rec)
		if err != nil {
			log.Printf("failed to store analysis: %v", err)
		} else {
			resp.AnalysisID = id.String()
		}
	}

	jsonResponse(w, http.StatusOK, resp)
}

type chatRequest struct {
	Message    string         `json:"message" validate:"required"`
	AnalysisID string         `json:"analysis_id,omitempty"`
	Context    *chat.Context  `json:"context,omitempty"`
	History    []chat.Message `json:"history,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "'message' is required")
		return
	}

	chatCtx := req.Context
	if chatCtx == nil {
		chatCtx = &chat.Context{}
	}
	if len(req.History) > 0 {
		chatCtx.History = req.History
	}

	if chatCtx.Analysis == nil && req.AnalysisID != "" && s.db != nil {
		if id, err := uuid.Parse(req.AnalysisID); err == nil {
			rec, err := s.db.GetAnalysis(r.Context(), id)
			if err != nil {
				log.Printf("failed to load analysis for chat context: %v", err)
			} else if rec != nil {
				chatCtx.Analysis = rec.Result
			}
		}
	}

	reply := s.responder.Respond(r.Context(), req.Message, chatCtx)
	jsonResponse(w, http.StatusOK, reply)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		errorResponse(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid analysis id")
		return
	}

	rec, err := s.db.GetAnalysis(r.Context(), id)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load analysis")
		return
	}
	if rec == nil {
		errorResponse(w, http.StatusNotFound, "analysis not found")
		return
	}

	jsonResponse(w, http.StatusOK, rec)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		errorResponse(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		errorResponse(w, http.StatusBadRequest, "'email' query parameter is required")
		return
	}

	userID, err := s.db.GetUserByEmail(r.Context(), email)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to look up user")
		return
	}
	if userID == uuid.Nil {
		jsonResponse(w, http.StatusOK, []db.AnalysisSummary{})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	summaries, err := s.db.ListAnalysesByUser(r.Context(), userID, limit)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to list analyses")
		return
	}

	jsonResponse(w, http.StatusOK, summaries)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		errorResponse(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid user id")
		return
	}

	stats, err := s.db.GetUserStats(r.Context(), userID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to aggregate stats")
		return
	}

	jsonResponse(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	providers := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		providers = append(providers, p.Name())
	}

	status := map[string]any{
		"status":    "ok",
		"providers": providers,
		"database":  s.db != nil,
	}
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = false
		}
	}

	jsonResponse(w, http.StatusOK, status)
}
