package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/sercha-integrations/internal/adapters/driving/oauth"
	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-integrations/internal/logger"
)

// Handler serves the integration endpoints.
type Handler struct {
	oauth          driving.OAuthService
	items          driving.ItemService
	frontendOrigin string
}

// NewHandler creates a handler over the driving services.
func NewHandler(oauthSvc driving.OAuthService, items driving.ItemService, frontendOrigin string) *Handler {
	return &Handler{
		oauth:          oauthSvc,
		items:          items,
		frontendOrigin: frontendOrigin,
	}
}

// scopeFromQuery builds the scope from the :provider path parameter and
// the user_id and org_id query parameters.
func scopeFromQuery(c *gin.Context) (domain.Scope, error) {
	return domain.NewScope(
		domain.ProviderType(c.Param("provider")),
		c.Query("org_id"),
		c.Query("user_id"),
	)
}

// Authorize starts a flow. Redirect-style providers get a 302; the others
// get the URL as JSON for the frontend to open.
func (h *Handler) Authorize(c *gin.Context) {
	scope, err := scopeFromQuery(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	res, err := h.oauth.Authorize(c.Request.Context(), scope)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if res.Style == domain.AuthorizeRedirect {
		c.Redirect(http.StatusFound, res.URL)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authorization_url": res.URL})
}

// Callback completes a flow and renders the popup page.
func (h *Handler) Callback(c *gin.Context) {
	provider := domain.ProviderType(c.Param("provider"))

	if providerErr := c.Query("error"); providerErr != "" {
		reason := providerErr
		if desc := c.Query("error_description"); desc != "" {
			reason = fmt.Sprintf("%s: %s", providerErr, desc)
		}
		logger.Warn("oauth: %s returned error on callback: %s", provider, reason)
		h.renderPopup(c, http.StatusBadRequest, oauth.ErrorMessage(provider, reason))
		return
	}

	res, err := h.oauth.Callback(c.Request.Context(), provider, c.Query("code"), c.Query("state"))
	if err != nil {
		_ = c.Error(err)
		h.renderPopup(c, StatusFor(err), oauth.ErrorMessage(provider, err.Error()))
		return
	}

	h.renderPopup(c, http.StatusOK, oauth.SuccessMessage(res.Scope))
}

func (h *Handler) renderPopup(c *gin.Context, status int, msg oauth.PopupMessage) {
	page, err := oauth.NewPopup(msg, h.frontendOrigin).HTML()
	if err != nil {
		abortWithError(c, fmt.Errorf("render popup: %w", err))
		return
	}
	c.Data(status, "text/html; charset=utf-8", page)
}

// Credentials returns the cached credential.
func (h *Handler) Credentials(c *gin.Context) {
	scope, err := scopeFromQuery(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	cred, err := h.oauth.Credentials(c.Request.Context(), scope)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cred)
}

// Items lists the provider items visible to the cached credential.
func (h *Handler) Items(c *gin.Context) {
	scope, err := scopeFromQuery(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	items, err := h.items.ListItems(c.Request.Context(), scope)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
