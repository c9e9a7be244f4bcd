package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tujenge/mipango/core/meeting"
)

type meetingApi struct {
	svc *meeting.Service
}

func registerMeetingAPI(g *echo.Group, svc *meeting.Service) {
	api := meetingApi{svc: svc}

	mg := g.Group("/meetings")

	mg.GET("", api.query)
	mg.POST("", api.create)
	mg.GET("/:id", api.retrieve)
	mg.PUT("/:id", api.update)
	mg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *meetingApi) query(ctx echo.Context) error {
	meetings, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying meetings")
	}
	return ctx.JSON(http.StatusOK, meetings)
}

func (api *meetingApi) create(ctx echo.Context) error {
	var data meeting.NewMeeting
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMeeting")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	m, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating meeting")
	}
	return ctx.JSON(http.StatusCreated, m)
}

func (api *meetingApi) retrieve(ctx echo.Context) error {
	m, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, m)
}

func (api *meetingApi) update(ctx echo.Context) error {
	var data meeting.NewMeeting
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMeeting")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	m, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, m)
}

func (api *meetingApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
