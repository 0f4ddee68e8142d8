package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// OpenAPIDocument returns the raw API description served to the docs UI.
func OpenAPIDocument() []byte {
	return openAPIDocument
}

// GetSwagger parses and validates the embedded API description.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Created defines model for Created.
type Created struct {
	Id openapi_types.UUID `json:"id"`
}

// NewUser defines model for NewUser.
type NewUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LocationChange defines model for LocationChange.
type LocationChange struct {
	Name string  `json:"name"`
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
}

// NewLocation defines model for NewLocation.
type NewLocation struct {
	Name   string  `json:"name"`
	Lon    float64 `json:"lon"`
	Lat    float64 `json:"lat"`
	IsHome bool    `json:"is_home,omitempty"`
}

// Schedule defines model for Schedule.
type Schedule struct {
	Frequency string              `json:"frequency"`
	Start     *openapi_types.Date `json:"start,omitempty"`
	End       *openapi_types.Date `json:"end,omitempty"`
}

// NewPacket defines model for NewPacket.
type NewPacket struct {
	RecipientId openapi_types.UUID `json:"recipient_id"`
}

// StepResponse defines model for StepResponse.
type StepResponse struct {
	Response string `json:"response"`
}

// StepAction defines model for StepAction.
type StepAction struct {
	Action string `json:"action"`
}

// ChatMessage defines model for ChatMessage.
type ChatMessage struct {
	Text string `json:"text"`
}

// Step defines model for Step.
type Step struct {
	Id        openapi_types.UUID `json:"id"`
	HolderId  openapi_types.UUID `json:"holder_id"`
	PlaceName string             `json:"place_name"`
	Start     openapi_types.Date `json:"start"`
	End       openapi_types.Date `json:"end"`
	Status    string             `json:"status"`
}

// Route defines model for Route.
type Route struct {
	Id        openapi_types.UUID `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Steps     []Step             `json:"steps"`
}

// Packet defines model for Packet.
type Packet struct {
	Id          openapi_types.UUID `json:"id"`
	HumanId     string             `json:"human_id"`
	SenderId    openapi_types.UUID `json:"sender_id"`
	RecipientId openapi_types.UUID `json:"recipient_id"`
	CreatedAt   time.Time          `json:"created_at"`
	Status      string             `json:"status"`
	Route       *Route             `json:"route,omitempty"`
}

// Recalculation defines model for Recalculation.
type Recalculation struct {
	RouteId *openapi_types.UUID `json:"route_id,omitempty"`
}

// LogEntry defines model for LogEntry.
type LogEntry struct {
	CreatedAt   time.Time           `json:"created_at"`
	Action      string              `json:"action"`
	Description string              `json:"description"`
	RouteId     *openapi_types.UUID `json:"route_id,omitempty"`
	StepId      *openapi_types.UUID `json:"step_id,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	CreateUser(ctx echo.Context) error
	CreateLocation(ctx echo.Context, userID openapi_types.UUID) error
	UpdateLocation(ctx echo.Context, locationID, userID openapi_types.UUID) error
	DeleteLocation(ctx echo.Context, locationID, userID openapi_types.UUID) error
	CreateStay(ctx echo.Context, locationID, userID openapi_types.UUID) error
	UpdateStay(ctx echo.Context, stayID, userID openapi_types.UUID) error
	DeleteStay(ctx echo.Context, stayID, userID openapi_types.UUID) error
	CreatePacket(ctx echo.Context, userID openapi_types.UUID) error
	GetPacket(ctx echo.Context, packetID openapi_types.UUID) error
	GetPacketLog(ctx echo.Context, packetID openapi_types.UUID) error
	CancelPacket(ctx echo.Context, packetID, userID openapi_types.UUID) error
	RecalculateRoute(ctx echo.Context, packetID openapi_types.UUID) error
	RespondToStep(ctx echo.Context, stepID, userID openapi_types.UUID) error
	PerformStepAction(ctx echo.Context, stepID, userID openapi_types.UUID) error
	PostChatMessage(ctx echo.Context, stepID, userID openapi_types.UUID) error
	GetStats(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var value openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return value, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

func bindUserID(ctx echo.Context) (openapi_types.UUID, error) {
	var value openapi_types.UUID
	headers := ctx.Request().Header[http.CanonicalHeaderKey(userIDHeader)]
	if len(headers) != 1 {
		return value, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Expected one value for %s, got %d", userIDHeader, len(headers)))
	}
	err := runtime.BindStyledParameterWithOptions("simple", userIDHeader, headers[0], &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return value, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", userIDHeader, err))
	}
	return value, nil
}

const userIDHeader = "X-User-ID"

func (w *ServerInterfaceWrapper) CreateUser(ctx echo.Context) error {
	return w.Handler.CreateUser(ctx)
}

func (w *ServerInterfaceWrapper) CreateLocation(ctx echo.Context) error {
	userID, err := bindUserID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CreateLocation(ctx, userID)
}

func (w *ServerInterfaceWrapper) UpdateLocation(ctx echo.Context) error {
	return w.withPathAndUser(ctx, "locationId", w.Handler.UpdateLocation)
}

func (w *ServerInterfaceWrapper) DeleteLocation(ctx echo.Context) error {
	return w.withPathAndUser(ctx, "locationId", w.Handler.DeleteLocation)
}

func (w *ServerInterfaceWrapper) CreateStay(ctx echo.Context) error {
	return w.withPathAndUser(ctx, "locationId", w.Handler.CreateStay)
}

func (w *ServerInterfaceWrapper) UpdateStay(ctx echo.Context) error {
	return w.withPathAndUser(ctx, "stayId", w.Handler.UpdateStay)
}

func (w *ServerInterfaceWrapper) DeleteStay(ctx echo.Context) error {
	return w.withPathAndUser(ctx, "stayId", w.Handler.DeleteStay)
}

func (w *ServerInterfaceWrapper) CreatePacket(ctx echo.Context) error {
	userID, err := bindUserID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CreatePacket(ctx, userID)
}

func (w *ServerInterfaceWrapper) GetPacket(ctx echo.Context) error {
	return w.withPath(ctx, "packetId", w.Handler.GetPacket)
}

func (w *ServerInterfaceWrapper) GetPacketLog(ctx echo.Context) error {
	return w.withPath(ctx, "packetId", w.Handler.GetPacketLog)
}

func (w *ServerInterfaceWrapper) CancelPacket(ctx echo.Context) error {
	return w.withPathAndUser(ctx, "packetId", w.Handler.CancelPacket)
}

func (w *ServerInterfaceWrapper) RecalculateRoute(ctx echo.Context) error {
	return w.withPath(ctx, "packetId", w.Handler.RecalculateRoute)
}

func (w *ServerInterfaceWrapper) RespondToStep(ctx echo.Context) error {
	return w.withPathAndUser(ctx, "stepId", w.Handler.RespondToStep)
}

func (w *ServerInterfaceWrapper) PerformStepAction(ctx echo.Context) error {
	return w.withPathAndUser(ctx, "stepId", w.Handler.PerformStepAction)
}

func (w *ServerInterfaceWrapper) PostChatMessage(ctx echo.Context) error {
	return w.withPathAndUser(ctx, "stepId", w.Handler.PostChatMessage)
}

func (w *ServerInterfaceWrapper) GetStats(ctx echo.Context) error {
	return w.Handler.GetStats(ctx)
}

func (w *ServerInterfaceWrapper) withPath(
	ctx echo.Context,
	name string,
	next func(echo.Context, openapi_types.UUID) error,
) error {
	id, err := bindPathUUID(ctx, name)
	if err != nil {
		return err
	}
	return next(ctx, id)
}

func (w *ServerInterfaceWrapper) withPathAndUser(
	ctx echo.Context,
	name string,
	next func(echo.Context, openapi_types.UUID, openapi_types.UUID) error,
) error {
	id, err := bindPathUUID(ctx, name)
	if err != nil {
		return err
	}
	userID, err := bindUserID(ctx)
	if err != nil {
		return err
	}
	return next(ctx, id, userID)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/users", w.CreateUser)
	router.POST("/api/v1/locations", w.CreateLocation)
	router.PUT("/api/v1/locations/:locationId", w.UpdateLocation)
	router.DELETE("/api/v1/locations/:locationId", w.DeleteLocation)
	router.POST("/api/v1/locations/:locationId/stays", w.CreateStay)
	router.PUT("/api/v1/stays/:stayId", w.UpdateStay)
	router.DELETE("/api/v1/stays/:stayId", w.DeleteStay)
	router.POST("/api/v1/packets", w.CreatePacket)
	router.GET("/api/v1/packets/:packetId", w.GetPacket)
	router.GET("/api/v1/packets/:packetId/log", w.GetPacketLog)
	router.POST("/api/v1/packets/:packetId/cancel", w.CancelPacket)
	router.POST("/api/v1/packets/:packetId/recalculate", w.RecalculateRoute)
	router.POST("/api/v1/steps/:stepId/response", w.RespondToStep)
	router.POST("/api/v1/steps/:stepId/actions", w.PerformStepAction)
	router.POST("/api/v1/steps/:stepId/messages", w.PostChatMessage)
	router.GET("/api/v1/stats", w.GetStats)
}
