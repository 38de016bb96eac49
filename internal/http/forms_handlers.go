package http

import (
	"context"
	"net/http"

	"github.com/goliatone/go-site/internal/email"
	"github.com/goliatone/go-site/internal/subscribers"
	"github.com/goliatone/go-site/pkg/interfaces"
)

type sendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

type pairResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	ID               string `json:"id,omitempty"`
	WelcomeEmailSent bool   `json:"welcomeEmailSent"`
}

type sendFunc func(context.Context) (email.SendResult, error)

// sendPair sends primary and secondary concurrently. Only a primary failure
// is returned; a secondary failure is logged and reported through the bool.
func sendPair(ctx context.Context, logger interfaces.Logger, event string, primary, secondary sendFunc) (email.SendResult, bool, error) {
	outcomes := email.Settle[email.SendResult](ctx, primary, secondary)
	if err := outcomes[0].Err; err != nil {
		logger.Error("api."+event+".failed", "error", err)
		return email.SendResult{}, outcomes[1].OK(), err
	}
	if err := outcomes[1].Err; err != nil {
		logger.Warn("api."+event+".secondary_failed", "error", err)
	}
	return outcomes[0].Value, outcomes[1].OK(), nil
}

func writeSendFailed(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "send_failed",
		Message: "Failed to send email. Please try again later.",
	})
}

func (api *SiteAPI) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.normalize()
	if err := validateForm(req); err != nil {
		writeError(w, err)
		return
	}

	sub := req.submission()
	logger := api.requestLogger(r)
	result, welcomeSent, err := sendPair(r.Context(), logger, "send_email",
		func(ctx context.Context) (email.SendResult, error) {
			return api.mailer.SendContactNotification(ctx, sub)
		},
		func(ctx context.Context) (email.SendResult, error) {
			return api.mailer.SendContactConfirmation(ctx, sub)
		},
	)
	if err != nil {
		writeSendFailed(w)
		return
	}
	writeJSON(w, http.StatusOK, pairResponse{
		Success:          true,
		Message:          "Email sent successfully",
		ID:               result.ID,
		WelcomeEmailSent: welcomeSent,
	})
}

func (api *SiteAPI) handleSendWelcome(w http.ResponseWriter, r *http.Request) {
	var req welcomeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.normalize()
	if err := validateForm(req); err != nil {
		writeError(w, err)
		return
	}

	result, err := api.mailer.SendWelcome(r.Context(), email.Welcome{Name: req.Name, Email: req.Email})
	if err != nil {
		api.requestLogger(r).Error("api.send_welcome.failed", "error", err)
		writeSendFailed(w)
		return
	}
	writeJSON(w, http.StatusOK, sendResponse{
		Success: true,
		Message: "Welcome email sent successfully",
		ID:      result.ID,
	})
}

func (api *SiteAPI) handleEventSubscription(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.normalize()
	if err := validateForm(req); err != nil {
		writeError(w, err)
		return
	}

	logger := api.requestLogger(r)
	if !api.record(w, r, logger, subscribers.SubscribeInput{
		Audience: subscribers.AudienceEvents,
		Email:    req.Email,
		Name:     req.Name,
		EventID:  req.EventID,
	}) {
		return
	}

	reg := req.registration()
	result, confirmed, err := sendPair(r.Context(), logger, "event_subscription",
		func(ctx context.Context) (email.SendResult, error) { return api.mailer.SendEventNotification(ctx, reg) },
		func(ctx context.Context) (email.SendResult, error) { return api.mailer.SendEventConfirmation(ctx, reg) },
	)
	if err != nil {
		writeSendFailed(w)
		return
	}
	writeJSON(w, http.StatusOK, pairResponse{
		Success:          true,
		Message:          "Successfully registered for the event",
		ID:               result.ID,
		WelcomeEmailSent: confirmed,
	})
}

func (api *SiteAPI) handleSubscribeInsights(w http.ResponseWriter, r *http.Request) {
	var req insightsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.normalize()
	if err := validateForm(req); err != nil {
		writeError(w, err)
		return
	}

	logger := api.requestLogger(r)
	if !api.record(w, r, logger, subscribers.SubscribeInput{
		Audience:  subscribers.AudienceInsights,
		Email:     req.Email,
		Name:      req.Name,
		Interests: req.Interests,
	}) {
		return
	}

	sub := req.subscription()
	result, welcomed, err := sendPair(r.Context(), logger, "subscribe_insights",
		func(ctx context.Context) (email.SendResult, error) {
			return api.mailer.SendInsightsNotification(ctx, sub)
		},
		func(ctx context.Context) (email.SendResult, error) { return api.mailer.SendInsightsWelcome(ctx, sub) },
	)
	if err != nil {
		writeSendFailed(w)
		return
	}
	writeJSON(w, http.StatusOK, pairResponse{
		Success:          true,
		Message:          "Successfully subscribed to insights",
		ID:               result.ID,
		WelcomeEmailSent: welcomed,
	})
}

// record stores the subscription when a subscriber service is wired and is a
// no-op otherwise. It writes the error response and returns false on failure.
func (api *SiteAPI) record(w http.ResponseWriter, r *http.Request, logger interfaces.Logger, in subscribers.SubscribeInput) bool {
	if api.subscriptions == nil {
		return true
	}
	if _, err := api.subscriptions.Subscribe(r.Context(), in); err != nil {
		logger.Error("api.subscribe.record_failed", "audience", in.Audience, "error", err)
		writeError(w, err)
		return false
	}
	return true
}
