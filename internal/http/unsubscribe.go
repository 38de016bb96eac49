package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/goliatone/go-site/internal/email"
	"github.com/goliatone/go-site/internal/subscribers"
	"github.com/goliatone/go-site/internal/validation"
	"github.com/goliatone/go-site/pkg/interfaces"
)

var errSubscriptionsUnavailable = errors.New("http: subscriptions are not configured")

func (api *SiteAPI) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req unsubscribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.normalize()
	if err := validateForm(req); err != nil {
		writeError(w, err)
		return
	}

	if err := api.unsubscribe(r.Context(), api.requestLogger(r), req); err != nil {
		if errors.Is(err, errSubscriptionsUnavailable) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "unavailable", Message: "Unsubscribe is not available"})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sendResponse{
		Success: true,
		Message: "You have been unsubscribed",
	})
}

// handleUnsubscribeLink serves the one-click link embedded in list mail. It
// always redirects: to the confirmation page on success and to the error page
// otherwise.
func (api *SiteAPI) handleUnsubscribeLink(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := unsubscribeRequest{
		Email: query.Get("email"),
		List:  query.Get("list"),
		Token: query.Get("token"),
	}
	req.normalize()
	logger := api.requestLogger(r)

	if err := validateForm(req); err != nil {
		http.Redirect(w, r, redirectURL(api.errorURL, map[string]string{"reason": "invalid_request"}), http.StatusSeeOther)
		return
	}
	if err := api.unsubscribe(r.Context(), logger, req); err != nil {
		http.Redirect(w, r, redirectURL(api.errorURL, map[string]string{"reason": reasonFor(err)}), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, redirectURL(api.confirmedURL, map[string]string{"email": req.Email, "list": req.List}), http.StatusSeeOther)
}

func (api *SiteAPI) unsubscribe(ctx context.Context, logger interfaces.Logger, req unsubscribeRequest) error {
	if api.subscriptions == nil {
		return errSubscriptionsUnavailable
	}
	audience, err := subscribers.ParseAudience(req.List)
	if err != nil {
		return validation.NewFieldError(err)
	}
	changed, err := api.subscriptions.Unsubscribe(ctx, subscribers.UnsubscribeInput{
		Audience: audience,
		Email:    req.Email,
		Token:    req.Token,
	})
	if err != nil {
		logger.Warn("api.unsubscribe.failed", "audience", audience, "error", err)
		return err
	}
	if len(changed) == 0 {
		return nil
	}
	if _, err := api.mailer.SendUnsubscribeConfirmation(ctx, email.Unsubscription{Email: req.Email, List: string(audience)}); err != nil {
		logger.Warn("api.unsubscribe.confirmation_failed", "error", err)
	}
	return nil
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, subscribers.ErrTokenInvalid):
		return "invalid_token"
	case errors.Is(err, errSubscriptionsUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

func redirectURL(target string, params map[string]string) string {
	parsed, err := url.Parse(target)
	if err != nil {
		return target
	}
	query := parsed.Query()
	for key, value := range params {
		if value != "" {
			query.Set(key, value)
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
