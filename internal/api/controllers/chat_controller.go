package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"superagent/internal/models/chat_models"
	"superagent/internal/models/request_models"
	"superagent/internal/models/response_models"
	"superagent/internal/services"
	"superagent/pkg/middleware"
	"superagent/pkg/utils"
)

const msgInvalidRequest = "Invalid request format"

type ChatController struct {
	chatService services.ChatServiceInterface
	clock       utils.Clock
	logger      *zap.Logger
}

func NewChatController(chatService services.ChatServiceInterface, clock utils.Clock, logger *zap.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		clock:       clock,
		logger:      logger,
	}
}

// SubmitName godoc
// @Summary Start a conversation
// @Description Stores the name and resets any earlier progress for this session
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.SubmitNameRequest true "Name"
// @Success 200 {object} response_models.StepResponse
// @Router /submit_name [post]
func (cc *ChatController) SubmitName(c *gin.Context) {
	var req request_models.SubmitNameRequest
	if !cc.bind(c, &req) {
		return
	}
	cc.advance(c, chat_models.FieldName, req.Name)
}

// SubmitDOB godoc
// @Summary Submit date of birth
// @Description DD/MM/YYYY. Ages outside 18..79 end the conversation with blocked=true
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.SubmitDOBRequest true "Date of birth"
// @Success 200 {object} response_models.StepResponse
// @Router /submit_dob [post]
func (cc *ChatController) SubmitDOB(c *gin.Context) {
	var req request_models.SubmitDOBRequest
	if !cc.bind(c, &req) {
		return
	}

	res, err := cc.chatService.Advance(c.Request.Context(), middleware.SessionKey(c), chat_models.FieldDOB, req.DOB)
	if err != nil {
		utils.HandleServiceError(c, cc.logger, err)
		return
	}
	blocked := res.Blocked
	utils.RespondSuccess(c, response_models.StepResponse{Message: res.Message, Blocked: &blocked})
}

func (cc *ChatController) SelectInsurance(c *gin.Context) {
	var req request_models.SelectInsuranceRequest
	if !cc.bind(c, &req) {
		return
	}
	cc.advance(c, chat_models.FieldInsurance, req.Insurance.String())
}

func (cc *ChatController) SelectTiming(c *gin.Context) {
	var req request_models.SelectTimingRequest
	if !cc.bind(c, &req) {
		return
	}
	cc.advance(c, chat_models.FieldTiming, req.Timing.String())
}

func (cc *ChatController) SelectIncome(c *gin.Context) {
	var req request_models.SelectIncomeRequest
	if !cc.bind(c, &req) {
		return
	}
	cc.advance(c, chat_models.FieldIncome, req.Income.String())
}

func (cc *ChatController) SubmitPhone(c *gin.Context) {
	var req request_models.SubmitPhoneRequest
	if !cc.bind(c, &req) {
		return
	}
	cc.advance(c, chat_models.FieldPhone, req.Phone)
}

// AcknowledgePlan takes no body; it moves past the plan explanation.
func (cc *ChatController) AcknowledgePlan(c *gin.Context) {
	cc.advance(c, chat_models.FieldPlanAck, "")
}

// SelectPreference godoc
// @Summary Choose a protection level
// @Description Level 1..3 from the plan catalog; anything else is a 400
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.SelectPreferenceRequest true "Plan level"
// @Success 200 {object} response_models.PlanResponse
// @Failure 400 {object} response_models.StepResponse
// @Router /select_preference [post]
func (cc *ChatController) SelectPreference(c *gin.Context) {
	var req request_models.SelectPreferenceRequest
	if !cc.bind(c, &req) {
		return
	}

	res, err := cc.chatService.Advance(c.Request.Context(), middleware.SessionKey(c), chat_models.FieldPlanChoice, req.Level.String())
	if err != nil {
		utils.HandleServiceError(c, cc.logger, err)
		return
	}
	if res.Plan == nil {
		utils.RespondMessage(c, res.Message)
		return
	}
	utils.RespondSuccess(c, response_models.PlanResponse{
		Message:  res.Message,
		Plan:     res.Plan.Label,
		Premium:  res.Plan.PremiumMonthly,
		Life:     res.Plan.LifeCoverage,
		Critical: res.Plan.CriticalIllnessCoverage,
		Medical:  res.Plan.MedicalCoverage,
	})
}

func (cc *ChatController) SubmitEmail(c *gin.Context) {
	var req request_models.SubmitEmailRequest
	if !cc.bind(c, &req) {
		return
	}
	cc.advance(c, chat_models.FieldEmail, req.Email)
}

// SelectSignup godoc
// @Summary Final answer
// @Description Completes the conversation; the lead row and summary email are sent before responding
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.SelectSignupRequest true "Signup interest"
// @Success 200 {object} response_models.StepResponse
// @Router /select_signup [post]
func (cc *ChatController) SelectSignup(c *gin.Context) {
	var req request_models.SelectSignupRequest
	if !cc.bind(c, &req) {
		return
	}
	cc.advance(c, chat_models.FieldSignup, req.Interested.String())
}

func (cc *ChatController) Health(c *gin.Context) {
	utils.RespondSuccess(c, response_models.HealthResponse{
		Status: "ok",
		Time:   cc.clock().Format(time.RFC3339),
	})
}

func (cc *ChatController) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		cc.logger.Debug("bad request body", zap.String("path", c.FullPath()), zap.Error(err))
		utils.RespondError(c, http.StatusBadRequest, msgInvalidRequest)
		return false
	}
	return true
}

func (cc *ChatController) advance(c *gin.Context, field chat_models.Field, raw string) {
	res, err := cc.chatService.Advance(c.Request.Context(), middleware.SessionKey(c), field, raw)
	if err != nil {
		utils.HandleServiceError(c, cc.logger, err)
		return
	}
	utils.RespondMessage(c, res.Message)
}
