package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"github.com/abdibrokhim/ai-interviewer/internal/api/middleware"
	"github.com/abdibrokhim/ai-interviewer/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/interviews/{interview_id}/questions").
			To(handler.GenerateQuestions).
			Doc("Generate the question plan for an interview").
			Metadata(restfulspec.KeyOpenAPITags, []string{"interviews"}).
			Param(ws.PathParameter("interview_id", "Interview identifier").DataType("string")).
			Reads(InterviewRequest{}).
			Writes(QuestionsResponse{}).
			Returns(200, "OK", QuestionsResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/interviews/{interview_id}/start").
			To(handler.StartInterview).
			Doc("Start a live interview session").
			Metadata(restfulspec.KeyOpenAPITags, []string{"interviews"}).
			Param(ws.PathParameter("interview_id", "Interview identifier").DataType("string")).
			Reads(InterviewRequest{}).
			Writes(StartResponse{}).
			Returns(200, "OK", StartResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(409, "Session Already Exists", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/interviews/{interview_id}/messages").
			To(handler.HandleMessage).
			Doc("Submit one candidate turn").
			Metadata(restfulspec.KeyOpenAPITags, []string{"interviews"}).
			Param(ws.PathParameter("interview_id", "Interview identifier").DataType("string")).
			Reads(MessageRequest{}).
			Writes(MessageResponse{}).
			Returns(200, "OK", MessageResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Session Not Found", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/interviews/{interview_id}/events").
			To(handler.RecordEvent).
			Doc("Report a proctoring event (tab switch, camera frame)").
			Metadata(restfulspec.KeyOpenAPITags, []string{"interviews"}).
			Param(ws.PathParameter("interview_id", "Interview identifier").DataType("string")).
			Reads(EventRequest{}).
			Returns(200, "OK", EventResponse{}).
			Returns(204, "No Content", nil).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Session Not Found", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/evaluations/code").
			To(handler.EvaluateCode).
			Doc("Evaluate a code submission against its problem's test cases").
			Metadata(restfulspec.KeyOpenAPITags, []string{"evaluations"}).
			Reads(CodeEvaluationRequest{}).
			Writes(models.CodeEvaluationResult{}).
			Returns(200, "OK", models.CodeEvaluationResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/interviews/{interview_id}/score").
			To(handler.ScoreInterview).
			Doc("Score an ended interview and release the session").
			Metadata(restfulspec.KeyOpenAPITags, []string{"interviews"}).
			Param(ws.PathParameter("interview_id", "Interview identifier").DataType("string")).
			Writes(models.InterviewResult{}).
			Returns(200, "OK", models.InterviewResult{}).
			Returns(404, "Session Not Found", middleware.ErrorResponse{}).
			Returns(409, "Interview In Progress", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/interviews/{interview_id}/result").
			To(handler.GetResult).
			Doc("Fetch a stored interview result").
			Metadata(restfulspec.KeyOpenAPITags, []string{"interviews"}).
			Param(ws.PathParameter("interview_id", "Interview identifier").DataType("string")).
			Writes(models.InterviewResult{}).
			Returns(200, "OK", models.InterviewResult{}).
			Returns(404, "Result Not Found", middleware.ErrorResponse{}))

	container.Add(ws)
}
