package http

import (
	"context"
	"net/http"
	"time"

	"relay/internal/core/application/usecases/commands"
	"relay/internal/core/application/usecases/queries"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"
	"relay/internal/core/domain/model/stay"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CommandHandler executes one write use case.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// RequestHandler executes a use case that returns a result.
type RequestHandler[Q any, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateUser        CommandHandler[commands.CreateUserCommand]
	CreateLocation    CommandHandler[commands.CreateLocationCommand]
	UpdateLocation    CommandHandler[commands.UpdateLocationCommand]
	DeleteLocation    CommandHandler[commands.DeleteLocationCommand]
	CreateStay        CommandHandler[commands.CreateStayCommand]
	UpdateStay        CommandHandler[commands.UpdateStayCommand]
	DeleteStay        CommandHandler[commands.DeleteStayCommand]
	CreatePacket      CommandHandler[commands.CreatePacketCommand]
	CancelPacket      CommandHandler[commands.CancelPacketCommand]
	RespondToStep     CommandHandler[commands.RespondToStepCommand]
	PerformStepAction CommandHandler[commands.StepActionCommand]
	PostChatMessage   CommandHandler[commands.PostChatMessageCommand]
	RecalculateRoute  RequestHandler[commands.RecalculateRouteCommand, *route.Route]

	GetPacketStatus RequestHandler[queries.GetPacketStatusQuery, queries.GetPacketStatusQueryResponse]
	GetDeliveryLog  RequestHandler[queries.GetDeliveryLogQuery, []queries.GetDeliveryLogQueryResponse]
	GetStats        RequestHandler[queries.GetStatsQuery, queries.GetStatsQueryResponse]
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	now      func() time.Time
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers, now: time.Now}
}

// CreateUser handles POST /api/v1/users.
func (s *Server) CreateUser(ctx echo.Context) error {
	var body NewUser
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID := kernel.NewUUID()
	cmd, err := commands.NewCreateUserCommand(userID, body.Username, body.Email)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.handlers.CreateUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{Id: userID.Bytes()})
}

// CreateLocation handles POST /api/v1/locations.
func (s *Server) CreateLocation(ctx echo.Context, userID openapi_types.UUID) error {
	var body NewLocation
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	point, err := kernel.NewGeoPoint(body.Lon, body.Lat)
	if err != nil {
		return writeError(ctx, err)
	}
	locationID := kernel.NewUUID()
	cmd, err := commands.NewCreateLocationCommand(locationID, toKernelUUID(userID), body.Name, point, body.IsHome)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.handlers.CreateLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{Id: locationID.Bytes()})
}

// UpdateLocation handles PUT /api/v1/locations/{locationId}.
func (s *Server) UpdateLocation(ctx echo.Context, locationID, userID openapi_types.UUID) error {
	var body LocationChange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	point, err := kernel.NewGeoPoint(body.Lon, body.Lat)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewUpdateLocationCommand(
		toKernelUUID(locationID), toKernelUUID(userID), body.Name, point, s.now(),
	)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.handlers.UpdateLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteLocation handles DELETE /api/v1/locations/{locationId}.
func (s *Server) DeleteLocation(ctx echo.Context, locationID, userID openapi_types.UUID) error {
	cmd, err := commands.NewDeleteLocationCommand(toKernelUUID(locationID), toKernelUUID(userID), s.now())
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.handlers.DeleteLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateStay handles POST /api/v1/locations/{locationId}/stays.
func (s *Server) CreateStay(ctx echo.Context, locationID, userID openapi_types.UUID) error {
	var body Schedule
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	freq, start, end, err := body.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}
	stayID := kernel.NewUUID()
	cmd, err := commands.NewCreateStayCommand(stayID, toKernelUUID(userID), toKernelUUID(locationID), freq, start, end)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.handlers.CreateStay.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{Id: stayID.Bytes()})
}

// UpdateStay handles PUT /api/v1/stays/{stayId}.
func (s *Server) UpdateStay(ctx echo.Context, stayID, userID openapi_types.UUID) error {
	var body Schedule
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	freq, start, end, err := body.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewUpdateStayCommand(toKernelUUID(stayID), toKernelUUID(userID), freq, start, end, s.now())
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.handlers.UpdateStay.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteStay handles DELETE /api/v1/stays/{stayId}.
func (s *Server) DeleteStay(ctx echo.Context, stayID, userID openapi_types.UUID) error {
	cmd, err := commands.NewDeleteStayCommand(toKernelUUID(stayID), toKernelUUID(userID), s.now())
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.handlers.DeleteStay.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreatePacket handles POST /api/v1/packets.
func (s *Server) CreatePacket(ctx echo.Context, userID openapi_types.UUID) error {
	var body NewPacket
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	packetID := kernel.NewUUID()
	cmd, err := commands.NewCreatePacketCommand(packetID, toKernelUUID(userID), toKernelUUID(body.RecipientId), s.now())
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.handlers.CreatePacket.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{Id: packetID.Bytes()})
}

// GetPacket handles GET /api/v1/packets/{packetId}.
func (s *Server) GetPacket(ctx echo.Context, packetID openapi_types.UUID) error {
	query, err := queries.NewGetPacketStatusQuery(toKernelUUID(packetID), s.now())
	if err != nil {
		return writeError(ctx, err)
	}
	res, err := s.handlers.GetPacketStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	out := Packet{
		Id:          res.ID.Bytes(),
		HumanId:     res.HumanID,
		SenderId:    res.SenderID.Bytes(),
		RecipientId: res.RecipientID.Bytes(),
		CreatedAt:   res.CreatedAt,
		Status:      string(res.Status),
	}
	if res.Route != nil {
		out.Route = routeFromView(*res.Route)
	}
	return ctx.JSON(http.StatusOK, out)
}

// GetPacketLog handles GET /api/v1/packets/{packetId}/log.
func (s *Server) GetPacketLog(ctx echo.Context, packetID openapi_types.UUID) error {
	query, err := queries.NewGetDeliveryLogQuery(toKernelUUID(packetID))
	if err != nil {
		return writeError(ctx, err)
	}
	entries, err := s.handlers.GetDeliveryLog.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	out := make([]LogEntry, len(entries))
	for i, e := range entries {
		out[i] = LogEntry{
			CreatedAt:   e.CreatedAt,
			Action:      string(e.Action),
			Description: e.Description,
			RouteId:     optionalUUID(e.RouteID),
			StepId:      optionalUUID(e.StepID),
		}
	}
	return ctx.JSON(http.StatusOK, out)
}

// CancelPacket handles POST /api/v1/packets/{packetId}/cancel.
func (s *Server) CancelPacket(ctx echo.Context, packetID, userID openapi_types.UUID) error {
	cmd, err := commands.NewCancelPacketCommand(toKernelUUID(packetID), toKernelUUID(userID), s.now())
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.handlers.CancelPacket.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RecalculateRoute handles POST /api/v1/packets/{packetId}/recalculate.
func (s *Server) RecalculateRoute(ctx echo.Context, packetID openapi_types.UUID) error {
	cmd, err := commands.NewRecalculateRouteCommand(toKernelUUID(packetID), s.now())
	if err != nil {
		return writeError(ctx, err)
	}
	r, err := s.handlers.RecalculateRoute.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	var out Recalculation
	if r != nil {
		id := openapi_types.UUID(r.ID().Bytes())
		out.RouteId = &id
	}
	return ctx.JSON(http.StatusOK, out)
}

// RespondToStep handles POST /api/v1/steps/{stepId}/response.
func (s *Server) RespondToStep(ctx echo.Context, stepID, userID openapi_types.UUID) error {
	var body StepResponse
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	response, err := commands.ParseResponse(body.Response)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewRespondToStepCommand(toKernelUUID(stepID), toKernelUUID(userID), response, s.now())
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.handlers.RespondToStep.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// PerformStepAction handles POST /api/v1/steps/{stepId}/actions.
func (s *Server) PerformStepAction(ctx echo.Context, stepID, userID openapi_types.UUID) error {
	var body StepAction
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	action, err := commands.ParseStepAction(body.Action)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewStepActionCommand(toKernelUUID(stepID), toKernelUUID(userID), action, s.now())
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.handlers.PerformStepAction.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// PostChatMessage handles POST /api/v1/steps/{stepId}/messages.
func (s *Server) PostChatMessage(ctx echo.Context, stepID, userID openapi_types.UUID) error {
	var body ChatMessage
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewPostChatMessageCommand(toKernelUUID(stepID), toKernelUUID(userID), body.Text, s.now())
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.handlers.PostChatMessage.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetStats handles GET /api/v1/stats.
func (s *Server) GetStats(ctx echo.Context) error {
	stats, err := s.handlers.GetStats.Handle(ctx.Request().Context(), queries.NewGetStatsQuery())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (b Schedule) toDomain() (stay.Frequency, *kernel.Date, *kernel.Date, error) {
	freq, err := stay.ParseFrequency(b.Frequency)
	if err != nil {
		return 0, nil, nil, err
	}
	return freq, optionalDate(b.Start), optionalDate(b.End), nil
}

func routeFromView(v queries.RouteView) *Route {
	steps := make([]Step, len(v.Steps))
	for i, st := range v.Steps {
		steps[i] = Step{
			Id:        st.ID.Bytes(),
			HolderId:  st.HolderID.Bytes(),
			PlaceName: st.PlaceName,
			Start:     openapi_types.Date{Time: st.Start.Time()},
			End:       openapi_types.Date{Time: st.End.Time()},
			Status:    st.Status.String(),
		}
	}
	return &Route{Id: v.ID.Bytes(), CreatedAt: v.CreatedAt, Steps: steps}
}

func toKernelUUID(id openapi_types.UUID) kernel.UUID {
	out, _ := kernel.UUIDFromBytes(id[:])
	return out
}

func optionalUUID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	out := openapi_types.UUID(id.Bytes())
	return &out
}

func optionalDate(d *openapi_types.Date) *kernel.Date {
	if d == nil {
		return nil
	}
	out := kernel.DateOf(d.Time)
	return &out
}
