package server

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nunajera/portfolio-backend/internal"
	"github.com/nunajera/portfolio-backend/internal/mail"
)

const sendTimeout = 15 * time.Second

// newValidator reports field errors by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Server) handleContact(c *gin.Context) {
	var req internal.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, internal.ErrorResponse{Error: "Invalid request body"})
		return
	}

	// Bots fill every field; people never see this one.
	if strings.TrimSpace(req.Website) != "" {
		s.logger.Info("contact honeypot triggered", zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusOK, internal.ContactResponse{OK: true})
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if err := s.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, internal.ErrorResponse{Error: validationMessage(err)})
		return
	}

	if s.mailer == nil || !s.cfg.MailConfigured() {
		s.logger.Error("contact form submitted but mail is not configured")
		c.JSON(http.StatusInternalServerError, internal.ErrorResponse{Error: "Email service is not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), sendTimeout)
	defer cancel()
	if err := s.mailer.Send(ctx, mail.ContactEmail(req, s.cfg.ContactFrom, s.cfg.ContactTo)); err != nil {
		_ = c.Error(err)
		s.logger.Error("failed to send contact email", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internal.ErrorResponse{Error: "Failed to send message. Please try again later."})
		return
	}

	c.JSON(http.StatusOK, internal.ContactResponse{OK: true})
}

// validationMessage turns the first validator failure into a sentence.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	ve := &internal.ValidationError{Field: fe.Field()}
	switch fe.Tag() {
	case "required":
		ve.Reason = "is required"
	case "email":
		return "Invalid email address"
	case "max":
		ve.Reason = "must be at most " + fe.Param() + " characters"
	default:
		ve.Reason = "is invalid"
	}
	return ve.Error()
}
