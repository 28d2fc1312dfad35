package controllers

import (
	"github.com/gin-gonic/gin"
	"superagent/pkg/middleware"
)

func RegisterRoutes(r *gin.Engine, chat *ChatController, cookieName string) {
	r.GET("/health", chat.Health)

	steps := r.Group("/")
	steps.Use(middleware.SessionMiddleware(cookieName))
	steps.POST("/submit_name", chat.SubmitName)
	steps.POST("/submit_dob", chat.SubmitDOB)
	steps.POST("/select_insurance", chat.SelectInsurance)
	steps.POST("/select_timing", chat.SelectTiming)
	steps.POST("/select_income", chat.SelectIncome)
	steps.POST("/submit_phone", chat.SubmitPhone)
	steps.POST("/acknowledge_plan", chat.AcknowledgePlan)
	steps.POST("/select_preference", chat.SelectPreference)
	steps.POST("/submit_email", chat.SubmitEmail)
	steps.POST("/select_signup", chat.SelectSignup)
}
