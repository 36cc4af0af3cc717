package api

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"github.com/abdibrokhim/ai-interviewer/internal/api/middleware"
	"github.com/abdibrokhim/ai-interviewer/internal/models"
	"github.com/abdibrokhim/ai-interviewer/internal/orchestrator"
)

type Handler struct {
	orchestrator *orchestrator.Orchestrator
	store        orchestrator.Store
	logger       *zerolog.Logger
}

func NewHandler(orch *orchestrator.Orchestrator, store orchestrator.Store, logger *zerolog.Logger) *Handler {
	return &Handler{
		orchestrator: orch,
		store:        store,
		logger:       logger,
	}
}

// POST /api/v1/interviews/{interview_id}/questions
// Body: InterviewRequest
// Returns: QuestionsResponse
func (h *Handler) GenerateQuestions(req *restful.Request, resp *restful.Response) {
	interviewID := req.PathParameter("interview_id")

	var request InterviewRequest
	if err := req.ReadEntity(&request); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}
	request.Context.InterviewID = interviewID

	h.logger.Info().
		Str("interview_id", interviewID).
		Str("interview_type", string(request.Context.InterviewType)).
		Int("duration_min", request.Context.Duration).
		Msg("Generating questions")

	ctx := req.Request.Context()
	questions, err := h.orchestrator.PrepareQuestions(ctx, &request.Context, request.ResumeText, request.JobDescription)
	if err != nil {
		h.logger.Error().Err(err).Str("interview_id", interviewID).Msg("Question generation failed")
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, QuestionsResponse{Questions: questions})
}

// POST /api/v1/interviews/{interview_id}/start
// Body: InterviewRequest
// Returns: StartResponse
func (h *Handler) StartInterview(req *restful.Request, resp *restful.Response) {
	interviewID := req.PathParameter("interview_id")

	var request InterviewRequest
	if err := req.ReadEntity(&request); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}
	request.Context.InterviewID = interviewID

	ctx := req.Request.Context()
	messages, err := h.orchestrator.StartInterview(ctx, request.Context, request.ResumeText, request.JobDescription)
	if err != nil {
		h.logger.Error().Err(err).Str("interview_id", interviewID).Msg("Failed to start interview")
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, StartResponse{Messages: messages})
}

// POST /api/v1/interviews/{interview_id}/messages
// Body: MessageRequest
// Returns: MessageResponse
func (h *Handler) HandleMessage(req *restful.Request, resp *restful.Response) {
	interviewID := req.PathParameter("interview_id")

	var request MessageRequest
	if err := req.ReadEntity(&request); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	ctx := req.Request.Context()
	messages, err := h.orchestrator.HandleMessage(ctx, interviewID, request.Text, request.Audio)
	if err != nil {
		h.logger.Error().Err(err).Str("interview_id", interviewID).Msg("Failed to handle message")
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, MessageResponse{Messages: messages})
}

// POST /api/v1/interviews/{interview_id}/events
// Body: EventRequest
func (h *Handler) RecordEvent(req *restful.Request, resp *restful.Response) {
	interviewID := req.PathParameter("interview_id")

	var request EventRequest
	if err := req.ReadEntity(&request); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	ctx := req.Request.Context()
	var err error
	switch request.Type {
	case "tab_switch":
		err = h.orchestrator.RecordTabSwitch(ctx, interviewID)
	case "face":
		err = h.orchestrator.RecordFaceCount(ctx, interviewID, request.FaceCount, request.Emotion)
	case "signals":
		if request.Signals == nil {
			middleware.HandleError(resp, errors.New("signals payload is required"), http.StatusBadRequest)
			return
		}
		var risk models.Severity
		risk, err = h.orchestrator.RecordSignals(ctx, interviewID, *request.Signals)
		if err == nil {
			resp.WriteHeaderAndEntity(http.StatusOK, EventResponse{RiskLevel: risk})
			return
		}
	default:
		middleware.HandleError(resp, errors.New("unknown event type: "+request.Type), http.StatusBadRequest)
		return
	}

	if err != nil {
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	resp.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/evaluations/code
// Body: CodeEvaluationRequest
// Returns: models.CodeEvaluationResult
func (h *Handler) EvaluateCode(req *restful.Request, resp *restful.Response) {
	var request CodeEvaluationRequest
	if err := req.ReadEntity(&request); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("interview_id", request.InterviewID).
		Str("problem_id", request.Problem.ID).
		Str("language", request.Language).
		Msg("Evaluating code submission")

	ctx := req.Request.Context()
	result, err := h.orchestrator.EvaluateCode(ctx, request.InterviewID, request.Problem, request.Code, request.Language, request.TimeSpentMinutes)
	if err != nil {
		h.logger.Error().Err(err).Str("problem_id", request.Problem.ID).Msg("Code evaluation failed")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /api/v1/interviews/{interview_id}/score
// Returns: models.InterviewResult
func (h *Handler) ScoreInterview(req *restful.Request, resp *restful.Response) {
	interviewID := req.PathParameter("interview_id")

	ctx := req.Request.Context()
	result, err := h.orchestrator.ScoreInterview(ctx, interviewID)
	if err != nil {
		h.logger.Error().Err(err).Str("interview_id", interviewID).Msg("Scoring failed")
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	h.logger.Info().
		Str("interview_id", interviewID).
		Int("overall", result.Scores.Overall).
		Msg("Scoring complete")

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// GET /api/v1/interviews/{interview_id}/result
// Returns: models.InterviewResult
func (h *Handler) GetResult(req *restful.Request, resp *restful.Response) {
	interviewID := req.PathParameter("interview_id")

	if h.store == nil {
		middleware.HandleError(resp, errors.New("result storage is not configured"), http.StatusNotImplemented)
		return
	}

	result, err := h.store.GetResult(req.Request.Context(), interviewID)
	if err != nil {
		middleware.HandleError(resp, err, http.StatusNotFound)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, orchestrator.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, orchestrator.ErrSessionExists),
		errors.Is(err, orchestrator.ErrStillInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
