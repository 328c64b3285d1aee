package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gestipay/paie-backend-go/internal/domain/dashboard"
	"github.com/gestipay/paie-backend-go/internal/domain/user"
	"github.com/gestipay/paie-backend-go/internal/handler/http/middleware"
	"github.com/gestipay/paie-backend-go/internal/handler/http/response"
	"github.com/gestipay/paie-backend-go/internal/pkg/jwt"
	"github.com/gestipay/paie-backend-go/internal/pkg/sse"
)

type DashboardHandler interface {
	GetKPIs(w http.ResponseWriter, r *http.Request)
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	jwtService       jwt.Service
	hub              *sse.Hub
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, jwtService jwt.Service, hub *sse.Hub) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
		jwtService:       jwtService,
		hub:              hub,
	}
}

func (h *dashboardHandlerImpl) GetKPIs(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetKPIs(r.Context(), principal, r.URL.Query().Get("entreprise_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

type sseTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *dashboardHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// The enterprise key baked into the token decides which events the
	// stream sees. SUPER_ADMIN gets the broadcast key.
	entrepriseKey := sse.BroadcastKey
	switch principal.Role {
	case user.RoleSuperAdmin:
	case user.RoleAdminEntreprise, user.RoleCaissier:
		if principal.EntrepriseID == nil {
			response.HandleError(w, user.ErrForbidden)
			return
		}
		entrepriseKey = *principal.EntrepriseID
	default:
		response.HandleError(w, user.ErrForbidden)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(principal.UserID, entrepriseKey)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, sseTokenResponse{Token: token, ExpiresIn: expiresIn})
}

// Stream handles the SSE connection for real-time dashboard events
func (h *dashboardHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, entrepriseKey, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(entrepriseKey)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":\"%s\"}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
